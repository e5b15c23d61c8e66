package tracking

import (
	"sort"
	"strconv"
	"time"
	"yacht-tracker/internal/domain/device"
)

const mostActiveLimit = 5

type Analytics struct {
	TotalDevices          int            `json:"totalDevices"`
	OnlineDevices         int            `json:"onlineDevices"`
	OfflineDevices        int            `json:"offlineDevices"`
	CategoryBreakdown     map[string]int `json:"categoryBreakdown"`
	AccuracyBreakdown     map[string]int `json:"accuracyBreakdown"`
	AverageSignalStrength float64        `json:"averageSignalStrength"`
	AverageBatteryLevel   float64        `json:"averageBatteryLevel"`
	MostActive            []ActiveDevice `json:"mostActive"`
}

type ActiveDevice struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	LastSeen time.Time `json:"lastSeen"`
}

// Analyze summarises a device set. Averages only cover devices that report
// the value and are 0 when none do.
func Analyze(devices []device.Device) Analytics {
	a := Analytics{
		TotalDevices:      len(devices),
		CategoryBreakdown: make(map[string]int),
		AccuracyBreakdown: make(map[string]int),
		MostActive:        []ActiveDevice{},
	}

	var signalSum, batterySum, signalN, batteryN int
	for i := range devices {
		d := &devices[i]
		if d.IsOnline {
			a.OnlineDevices++
		}
		a.CategoryBreakdown[categoryKey(d.Category)]++
		if d.Accuracy != nil {
			a.AccuracyBreakdown[strconv.FormatFloat(*d.Accuracy, 'f', -1, 64)]++
		}
		if d.SignalStrength != nil {
			signalSum += *d.SignalStrength
			signalN++
		}
		if d.BatteryLevel != nil {
			batterySum += *d.BatteryLevel
			batteryN++
		}
	}
	a.OfflineDevices = a.TotalDevices - a.OnlineDevices
	if signalN > 0 {
		a.AverageSignalStrength = float64(signalSum) / float64(signalN)
	}
	if batteryN > 0 {
		a.AverageBatteryLevel = float64(batterySum) / float64(batteryN)
	}

	seen := make([]*device.Device, 0, len(devices))
	for i := range devices {
		if devices[i].HasLastSeen() {
			seen = append(seen, &devices[i])
		}
	}
	sort.SliceStable(seen, func(i, j int) bool {
		if c := seen[i].LastSeen.Compare(seen[j].LastSeen); c != 0 {
			return c > 0
		}
		return seen[i].ID < seen[j].ID
	})
	for i := 0; i < len(seen) && i < mostActiveLimit; i++ {
		a.MostActive = append(a.MostActive, ActiveDevice{
			ID:       seen[i].ID,
			Name:     seen[i].Name,
			LastSeen: seen[i].LastSeen,
		})
	}

	return a
}
