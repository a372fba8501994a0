package model

// NormalizeUser maps a raw user document onto canonical display fields.
// Historical records carry the same attribute under several casings
// (firstName/firstname/FirstName and so on), so every read goes through
// this adapter once, at the store boundary, instead of scattering the
// synonym lookups through the pipeline.
//
// Missing name parts stay empty; missing roll number, branch, year and
// course default to "N/A" to match what the report renders for gaps.
func NormalizeUser(raw map[string]any) User {
	if len(raw) == 0 {
		return User{}
	}
	return User{
		FirstName: pick(raw, "firstName", "firstname", "FirstName"),
		LastName:  pick(raw, "lastName", "lastname", "LastName"),
		RollNo:    pickDefault(raw, "N/A", "rollNo", "rollno", "RollNo"),
		Branch:    pickDefault(raw, "N/A", "branch", "Branch"),
		Year:      pickDefault(raw, "N/A", "year", "Year"),
		Course:    pickDefault(raw, "N/A", "course", "Course"),
	}
}

func pick(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func pickDefault(raw map[string]any, def string, keys ...string) string {
	if s := pick(raw, keys...); s != "" {
		return s
	}
	return def
}
