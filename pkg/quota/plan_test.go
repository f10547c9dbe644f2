package quota

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlanNameCanonical(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, PlanStarter, catalog.ResolvePlanName("starter"))
	assert.Equal(t, PlanScale, catalog.ResolvePlanName("  Scale "))
}

func TestResolvePlanNameLegacyAliases(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, PlanFree, catalog.ResolvePlanName("trial"))
	assert.Equal(t, PlanStarter, catalog.ResolvePlanName("solo"))
	assert.Equal(t, PlanGrowth, catalog.ResolvePlanName("Professional"))
	assert.Equal(t, PlanScale, catalog.ResolvePlanName("enterprise"))
}

func TestResolvePlanNameUnknownFailsClosed(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, PlanFree, catalog.ResolvePlanName("platinum-unlimited"))
	assert.Equal(t, PlanFree, catalog.ResolvePlanName(""))
}

func TestResolveLimits(t *testing.T) {
	catalog := DefaultCatalog()

	limits := catalog.ResolveLimits("starter")
	assert.Equal(t, 50, limits.EmailsPerDayPerInbox)
	assert.Equal(t, 500, limits.EmailsPerMonth)

	// fail closed, never to unlimited
	limits = catalog.ResolveLimits("no-such-plan")
	assert.Equal(t, DefaultCatalog().plans[PlanFree], limits)
}

func TestLoadCatalogMergesOverBuiltin(t *testing.T) {
	catalogYAML := `
plans:
  starter:
    emailsPerDayPerInbox: 75
    emailsPerMonth: 750
aliases:
  legacy_pro: growth
`
	file := path.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(file, []byte(catalogYAML), 0o600))

	catalog, err := LoadCatalog(file)
	require.NoError(t, err)

	limits := catalog.ResolveLimits("starter")
	assert.Equal(t, 75, limits.EmailsPerDayPerInbox)
	assert.Equal(t, 750, limits.EmailsPerMonth)

	// untouched plans and aliases survive the merge
	assert.Equal(t, PlanGrowth, catalog.ResolvePlanName("legacy_pro"))
	assert.Equal(t, PlanGrowth, catalog.ResolvePlanName("pro"))
	assert.Equal(t, 200, catalog.ResolveLimits("scale").EmailsPerDayPerInbox)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(path.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
