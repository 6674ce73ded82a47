package aqi

import (
	"fmt"
)

// HealthProfile is a caller supplied sensitivity tag used to tailor advice
type HealthProfile int

const (
	Child HealthProfile = iota
	Adult
	Elderly
	Asthma
)

var profileNames = []string{
	Child:   "child",
	Adult:   "adult",
	Elderly: "elderly",
	Asthma:  "asthma",
}

// HealthProfiles returns every profile in declaration order
func HealthProfiles() []HealthProfile {
	return []HealthProfile{Child, Adult, Elderly, Asthma}
}

func (p HealthProfile) valid() bool {
	return p >= Child && p <= Asthma
}

func (p HealthProfile) String() string {
	if !p.valid() {
		return fmt.Sprintf("HealthProfile(%d)", int(p))
	}
	return profileNames[p]
}

// ParseHealthProfile maps "child", "adult", "elderly" or "asthma" to a profile
func ParseHealthProfile(s string) (HealthProfile, error) {
	for _, p := range HealthProfiles() {
		if profileNames[p] == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("aqi: unknown health profile %q: %w", s, ErrInvalidInput)
}

// ConfigurationError reports a hole in one of the static lookup tables
type ConfigurationError struct {
	Category Category
	Profile  HealthProfile
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("aqi: advice table entry (%s, %s): %s", e.Category, e.Profile, e.Reason)
}

type adviceKey struct {
	Category Category
	Profile  HealthProfile
}

var adviceTable = map[adviceKey]string{
	{Good, Child}:   "Perfect day for outdoor play! Enjoy activities outside.",
	{Good, Adult}:   "Great air quality. Ideal for outdoor exercise and activities.",
	{Good, Elderly}: "Excellent conditions for a walk or outdoor activities.",
	{Good, Asthma}:  "Air quality is ideal. Feel free to spend time outdoors.",

	{Satisfactory, Child}:   "Good for outdoor activities. Monitor sensitive children.",
	{Satisfactory, Adult}:   "Air quality is acceptable for most outdoor activities.",
	{Satisfactory, Elderly}: "Generally safe, but take it easy with strenuous activities.",
	{Satisfactory, Asthma}:  "Acceptable conditions, but keep your inhaler handy.",

	{Moderate, Child}:   "Limit prolonged outdoor play. Short activities are okay.",
	{Moderate, Adult}:   "Reduce prolonged or heavy outdoor exertion.",
	{Moderate, Elderly}: "Limit time outdoors, especially physical activities.",
	{Moderate, Asthma}:  "Consider staying indoors. Use reliever inhaler if needed.",

	{Poor, Child}:   "Avoid outdoor activities. Stay indoors with air purification.",
	{Poor, Adult}:   "Avoid prolonged outdoor exertion. Wear N95 mask if going out.",
	{Poor, Elderly}: "Stay indoors. Use air purifier. Avoid any outdoor exposure.",
	{Poor, Asthma}:  "Stay indoors with air purifier. Have reliever inhaler ready.",

	{VeryPoor, Child}:   "Stay indoors. Use air purifier. Close windows.",
	{VeryPoor, Adult}:   "Stay indoors. Wear N95 mask if you must go out.",
	{VeryPoor, Elderly}: "Emergency precautions. Stay indoors with air purification.",
	{VeryPoor, Asthma}:  "Health emergency. Stay indoors. Monitor symptoms closely.",

	{Severe, Child}:   "Health emergency. Keep indoors with air purifier running.",
	{Severe, Adult}:   "Health emergency. Avoid all outdoor exposure.",
	{Severe, Elderly}: "Critical situation. Stay indoors. Monitor health continuously.",
	{Severe, Asthma}:  "Critical emergency. Stay indoors. Have emergency medication ready.",
}

var genericAdvice = map[Category]string{
	Good:         "Air quality is satisfactory. Enjoy outdoor activities!",
	Satisfactory: "Air quality is acceptable. Sensitive individuals should limit prolonged outdoor exertion.",
	Moderate:     "Members of sensitive groups may experience health effects. General public less likely to be affected.",
	Poor:         "Everyone may begin to experience health effects. Sensitive groups may experience more serious effects.",
	VeryPoor:     "Health alert: everyone may experience more serious health effects. Avoid outdoor activities.",
	Severe:       "Health warnings of emergency conditions. Everyone should avoid outdoor activities.",
}

func init() {
	if err := validateAdvice(adviceTable, genericAdvice); err != nil {
		panic(err)
	}
}

// validateAdvice checks that every (category, profile) cell is present,
// non-empty and distinct, and that every category has generic advice.
func validateAdvice(table map[adviceKey]string, generic map[Category]string) error {
	seen := make(map[string]adviceKey, len(table))
	for _, c := range Categories() {
		for _, p := range HealthProfiles() {
			key := adviceKey{c, p}
			text, ok := table[key]
			if !ok {
				return &ConfigurationError{Category: c, Profile: p, Reason: "missing"}
			}
			if text == "" {
				return &ConfigurationError{Category: c, Profile: p, Reason: "empty"}
			}
			if other, dup := seen[text]; dup {
				return &ConfigurationError{Category: c, Profile: p,
					Reason: fmt.Sprintf("duplicates (%s, %s)", other.Category, other.Profile)}
			}
			seen[text] = key
		}
		if generic[c] == "" {
			return &ConfigurationError{Category: c, Profile: -1, Reason: "missing generic advice"}
		}
	}
	return nil
}

// Advise returns the advisory for an AQI value tailored to a health profile
func Advise(aqi float64, profile HealthProfile) (string, error) {
	if !profile.valid() {
		return "", fmt.Errorf("aqi: health profile %d: %w", int(profile), ErrInvalidInput)
	}
	c, err := CategoryOf(aqi)
	if err != nil {
		return "", err
	}
	return adviceTable[adviceKey{c, profile}], nil
}

// GenericAdvice returns the category-wide advisory for when no profile is known
func GenericAdvice(aqi float64) (string, error) {
	c, err := CategoryOf(aqi)
	if err != nil {
		return "", err
	}
	return genericAdvice[c], nil
}
