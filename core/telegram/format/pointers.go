package format

// DerefString returns *s, or def when s is nil or empty.
func DerefString(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
