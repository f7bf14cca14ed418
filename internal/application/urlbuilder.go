package application

// BuildVerificationURL composes baseURL/eventName/?id=code.
// The code is embedded as-is; callers supply URL-safe codes.
func BuildVerificationURL(baseURL, eventName, code string) string {
	return baseURL + "/" + eventName + "/?id=" + code
}
