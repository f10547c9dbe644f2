package quota

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Canonical plan names. Unknown or legacy names resolve to one of these.
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanScale   = "scale"
)

// PlanLimits holds the outbound caps of one plan tier. Values are immutable,
// re-derived on every check.
type PlanLimits struct {
	EmailsPerDayPerInbox int `yaml:"emailsPerDayPerInbox"`
	EmailsPerMonth       int `yaml:"emailsPerMonth"`
}

// Catalog maps plan names to their outbound limits.
type Catalog struct {
	plans   map[string]PlanLimits
	aliases map[string]string
}

// defaultAliases maps legacy and marketing plan names still present on old
// subscriptions to their canonical tier.
var defaultAliases = map[string]string{
	"trial":        PlanFree,
	"basic":        PlanStarter,
	"solo":         PlanStarter,
	"pro":          PlanGrowth,
	"professional": PlanGrowth,
	"agency":       PlanScale,
	"enterprise":   PlanScale,
}

// DefaultCatalog returns the built-in plan catalog.
func DefaultCatalog() *Catalog {
	aliases := make(map[string]string, len(defaultAliases))
	for alias, target := range defaultAliases {
		aliases[alias] = target
	}
	return &Catalog{
		plans: map[string]PlanLimits{
			PlanFree:    {EmailsPerDayPerInbox: 5, EmailsPerMonth: 50},
			PlanStarter: {EmailsPerDayPerInbox: 50, EmailsPerMonth: 500},
			PlanGrowth:  {EmailsPerDayPerInbox: 100, EmailsPerMonth: 5000},
			PlanScale:   {EmailsPerDayPerInbox: 200, EmailsPerMonth: 20000},
		},
		aliases: aliases,
	}
}

type catalogFile struct {
	Plans   map[string]PlanLimits `yaml:"plans"`
	Aliases map[string]string     `yaml:"aliases"`
}

// LoadCatalog reads plan overrides from a YAML file and merges them over the
// built-in catalog. Plans and aliases not present in the file are kept.
func LoadCatalog(path string) (*Catalog, error) {
	fileContents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog file: %w", err)
	}

	var parsed catalogFile
	if err := yaml.UnmarshalStrict(fileContents, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan catalog file: %w", err)
	}

	catalog := DefaultCatalog()
	for name, limits := range parsed.Plans {
		catalog.plans[strings.ToLower(name)] = limits
	}
	for alias, target := range parsed.Aliases {
		catalog.aliases[strings.ToLower(alias)] = strings.ToLower(target)
	}
	return catalog, nil
}

// ResolvePlanName normalizes an arbitrary plan string, possibly aliased or
// legacy, to a canonical plan name. Unresolvable names map to the most
// restrictive tier, never to an unlimited one.
func (c *Catalog) ResolvePlanName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if target, ok := c.aliases[name]; ok {
		name = target
	}
	if _, ok := c.plans[name]; !ok {
		return PlanFree
	}
	return name
}

// ResolveLimits resolves a plan name to its outbound limits, failing closed
// to the free tier for anything it does not recognize.
func (c *Catalog) ResolveLimits(planName string) PlanLimits {
	return c.plans[c.ResolvePlanName(planName)]
}
