// Package export renders device snapshots as CSV or XLSX downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
	"yacht-tracker/internal/domain/device"
	"yacht-tracker/internal/tracking"

	"github.com/xuri/excelize/v2"
)

const (
	devicesSheet   = "devices"
	analyticsSheet = "analytics"
)

var deviceHeaders = []string{
	"Name",
	"Category",
	"Room",
	"Status",
	"Accuracy",
	"Signal Strength",
	"Battery Level",
	"Last Seen",
	"Device Type",
	"Family Priority",
}

// WriteCSV writes one header row followed by one row per device.
func WriteCSV(w io.Writer, devices []device.Device) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(deviceHeaders); err != nil {
		return err
	}
	for i := range devices {
		if err := cw.Write(deviceRow(&devices[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildXLSX renders a workbook with a device sheet and an analytics sheet.
func BuildXLSX(devices []device.Device, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", devicesSheet)
	if _, err := f.NewSheet(analyticsSheet); err != nil {
		return nil, err
	}

	for col, h := range deviceHeaders {
		if err := f.SetCellValue(devicesSheet, cell(col, 1), h); err != nil {
			return nil, err
		}
	}
	for i := range devices {
		for col, v := range deviceRow(&devices[i]) {
			if err := f.SetCellValue(devicesSheet, cell(col, i+2), v); err != nil {
				return nil, err
			}
		}
	}

	writeAnalytics(f, tracking.Analyze(devices), generatedAt)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAnalytics(f *excelize.File, a tracking.Analytics, generatedAt time.Time) {
	rows := [][]any{
		{"Device Analytics Report"},
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
		{},
		{"Total Devices", a.TotalDevices},
		{"Online Devices", a.OnlineDevices},
		{"Offline Devices", a.OfflineDevices},
		{"Average Signal Strength", a.AverageSignalStrength},
		{"Average Battery Level", a.AverageBatteryLevel},
		{},
		{"Category", "Devices"},
	}
	for _, k := range sortedKeys(a.CategoryBreakdown) {
		rows = append(rows, []any{k, a.CategoryBreakdown[k]})
	}
	rows = append(rows, []any{}, []any{"Accuracy", "Devices"})
	for _, k := range sortedKeys(a.AccuracyBreakdown) {
		rows = append(rows, []any{k, a.AccuracyBreakdown[k]})
	}
	rows = append(rows, []any{}, []any{"Most Active", "Last Seen"})
	for _, d := range a.MostActive {
		rows = append(rows, []any{d.Name, d.LastSeen.UTC().Format(time.RFC3339)})
	}

	for r, row := range rows {
		for c, v := range row {
			_ = f.SetCellValue(analyticsSheet, cell(c, r+1), v)
		}
	}
}

func deviceRow(d *device.Device) []string {
	status := "Offline"
	if d.IsOnline {
		status = "Online"
	}
	category := string(d.Category)
	if category == "" {
		category = string(device.CategoryOther)
	}
	deviceType := d.DeviceType
	if deviceType == "" {
		deviceType = "Unknown"
	}
	lastSeen := ""
	if d.HasLastSeen() {
		lastSeen = d.LastSeen.UTC().Format(time.RFC3339)
	}
	accuracy := ""
	if d.Accuracy != nil {
		accuracy = strconv.FormatFloat(*d.Accuracy, 'f', -1, 64)
	}
	return []string{
		d.Name,
		category,
		d.Room,
		status,
		accuracy,
		optionalInt(d.SignalStrength),
		optionalInt(d.BatteryLevel),
		lastSeen,
		deviceType,
		optionalInt(d.FamilyPriority),
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fmt.Sprintf("A%d", row)
	}
	return name
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
