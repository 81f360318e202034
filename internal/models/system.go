package models

// HostStatus describes the machine serving the tools
type HostStatus struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	KernelVersion string `json:"kernel_version"`
	UptimeSeconds uint64 `json:"uptime_seconds"`
}

// ToolInfo describes a registered tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
