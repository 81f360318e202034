package models

// UsageReport holds the display-formatted disk usage of a single device
type UsageReport struct {
	Device      string `json:"device"`
	TotalGB     string `json:"total_gb"`
	UsedGB      string `json:"used_gb"`
	AvailableGB string `json:"available_gb"`
	ReservedGB  string `json:"reserved_gb"`
	PercentUsed string `json:"percent_used"`
	Mount       string `json:"mount"`
	Summary     string `json:"summary"`
}

// ErrorReport is returned in place of a UsageReport when collection fails
type ErrorReport struct {
	Error string `json:"error"`
}

// ToolResult carries either a report or a failure, never both
type ToolResult struct {
	Report  *UsageReport
	Failure *ErrorReport
}

// Succeeded wraps a report into a result
func Succeeded(report UsageReport) ToolResult {
	return ToolResult{Report: &report}
}

// Failed wraps an error message into a result
func Failed(err error) ToolResult {
	return ToolResult{Failure: &ErrorReport{Error: err.Error()}}
}

// OK reports whether the result holds a usage report
func (r ToolResult) OK() bool {
	return r.Report != nil
}

// Fields flattens the result into the string map sent to callers
func (r ToolResult) Fields() map[string]string {
	if r.Report == nil {
		msg := "no result"
		if r.Failure != nil {
			msg = r.Failure.Error
		}
		return map[string]string{"error": msg}
	}

	return map[string]string{
		"device":       r.Report.Device,
		"total_gb":     r.Report.TotalGB,
		"used_gb":      r.Report.UsedGB,
		"available_gb": r.Report.AvailableGB,
		"reserved_gb":  r.Report.ReservedGB,
		"percent_used": r.Report.PercentUsed,
		"mount":        r.Report.Mount,
		"summary":      r.Report.Summary,
	}
}
