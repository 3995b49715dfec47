// Package georef carries the country reference data the resolver matches
// against: ISO 3166 names, alpha-2 codes and continents, plus the operator
// override document (substitutions, default country, extra codes, fallback
// continents).
package georef

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ContinentUnknown is what continent resolution degrades to when neither the
// fallback map nor the conversion table knows the code.
const ContinentUnknown = "Unknown"

// Overrides is the geo override document.
type Overrides struct {
	CountrySubstitutions   map[string]string `yaml:"country_substitutions"`
	DefaultCountry         string            `yaml:"default_country"`
	AdditionalCountryCodes map[string]string `yaml:"additional_countries_codes_dict_to_add"`
	FallbackContinentMap   map[string]string `yaml:"fallback_continent_map"`
}

// Data is the merged reference table: the embedded country list plus any
// overrides. Immutable after construction.
type Data struct {
	names           []string
	nameToCode      map[string]string
	codeToName      map[string]string
	codeToContinent map[string]string
	substitutions   map[string]string
	defaultCountry  string
	fallback        map[string]string
}

// New builds the reference data with no overrides.
func New() *Data {
	return build(Overrides{})
}

// Load builds the reference data from the override document at path. An
// empty path means no overrides; a missing file is logged and treated the
// same way.
func Load(path string) (*Data, error) {
	if path == "" {
		return New(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Warn("geo override file missing, using built-in reference data",
				zap.String("path", path))
			return New(), nil
		}
		return nil, eris.Wrapf(err, "georef: read override file %s", path)
	}
	var ov Overrides
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return nil, eris.Wrapf(err, "georef: parse override file %s", path)
	}
	return build(ov), nil
}

// WithDefaultCountry returns a copy of d with the default country replaced.
// "none" (or empty) disables the default. The lookup tables are shared.
func (d *Data) WithDefaultCountry(name string) *Data {
	dc := strings.TrimSpace(name)
	if strings.EqualFold(dc, "none") {
		dc = ""
	}
	out := *d
	out.defaultCountry = dc
	return &out
}

func build(ov Overrides) *Data {
	d := &Data{
		names:           make([]string, 0, len(countries)+len(ov.AdditionalCountryCodes)),
		nameToCode:      make(map[string]string, len(countries)),
		codeToName:      make(map[string]string, len(countries)),
		codeToContinent: make(map[string]string, len(countries)),
		substitutions:   make(map[string]string, len(ov.CountrySubstitutions)),
		fallback:        make(map[string]string, len(ov.FallbackContinentMap)),
	}
	for _, c := range countries {
		d.names = append(d.names, c.name)
		d.nameToCode[strings.ToLower(c.name)] = c.code
		d.codeToName[c.code] = c.name
		if c.continent != "" {
			d.codeToContinent[c.code] = c.continent
		}
	}
	for name, code := range ov.AdditionalCountryCodes {
		code = strings.ToUpper(code)
		d.names = append(d.names, name)
		d.nameToCode[strings.ToLower(name)] = code
		if _, ok := d.codeToName[code]; !ok {
			d.codeToName[code] = name
		}
	}
	for informal, canonical := range ov.CountrySubstitutions {
		d.substitutions[strings.ToLower(informal)] = canonical
	}
	for code, continent := range ov.FallbackContinentMap {
		d.fallback[strings.ToUpper(code)] = continent
	}
	if dc := strings.TrimSpace(ov.DefaultCountry); dc != "" && !strings.EqualFold(dc, "none") {
		d.defaultCountry = dc
	}
	return d
}

// Substitution maps an informal or historical country name to its canonical
// one. The lookup is case-insensitive.
func (d *Data) Substitution(name string) (string, bool) {
	canonical, ok := d.substitutions[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// NameMatch returns the display-cased country name matching s
// case-insensitively, if any.
func (d *Data) NameMatch(s string) (string, bool) {
	code, ok := d.nameToCode[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", false
	}
	if name, ok := d.codeToName[code]; ok {
		return name, true
	}
	return s, true
}

// CodeForName returns the upper-cased alpha-2 code for a country name, or ""
// when the name is unknown.
func (d *Data) CodeForName(name string) string {
	return d.nameToCode[strings.ToLower(strings.TrimSpace(name))]
}

// NameForCode returns the country name for an alpha-2 code, or "".
func (d *Data) NameForCode(code string) string {
	return d.codeToName[strings.ToUpper(strings.TrimSpace(code))]
}

// DefaultCountry returns the configured default country name, or "" when
// default-country injection is disabled.
func (d *Data) DefaultCountry() string {
	return d.defaultCountry
}

// ContinentForCode resolves an alpha-2 code to a continent name. The
// fallback map wins over the built-in conversion; anything unresolvable is
// ContinentUnknown.
func (d *Data) ContinentForCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ContinentUnknown
	}
	if continent, ok := d.fallback[code]; ok {
		return continent
	}
	if continent, ok := d.codeToContinent[code]; ok {
		return continent
	}
	zap.L().Debug("no continent for country code", zap.String("code", code))
	return ContinentUnknown
}
