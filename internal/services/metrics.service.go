package services

import (
	"diskusage/internal/models"

	"github.com/shirou/gopsutil/v3/host"
)

// GetHostStatus returns basic information about the serving machine
func GetHostStatus() (*models.HostStatus, error) {
	info, err := host.Info()
	if err != nil {
		return nil, err
	}

	return &models.HostStatus{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Platform:      info.Platform,
		KernelVersion: info.KernelVersion,
		UptimeSeconds: info.Uptime,
	}, nil
}
