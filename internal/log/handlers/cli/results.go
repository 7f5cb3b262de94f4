package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/ooni/onionoo/internal/util"
)

var (
	runningColor = color.New(color.FgGreen)
	offlineColor = color.New(color.FgRed)
	labelColor   = color.New(color.FgBlue)
)

func formatRunning(running bool) string {
	if running {
		return runningColor.Sprint("running")
	}
	return offlineColor.Sprint("offline")
}

func formatList(f log.Fields, name string) string {
	values, _ := f.Get(name).([]string)
	if len(values) <= 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func formatString(f log.Fields, name string) string {
	value, _ := f.Get(name).(string)
	if value == "" {
		return "-"
	}
	return value
}

func formatValue(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("%.2fG", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.2fM", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("%.2fk", value/1e3)
	case value >= 1 || value == 0:
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprintf("%.4g", value)
	}
}

func logRelayItem(w io.Writer, f log.Fields) error {
	colWidth := 24

	nickname, _ := f.Get("nickname").(string)
	fingerprint, _ := f.Get("fingerprint").(string)
	running, _ := f.Get("running").(bool)
	weight, _ := f.Get("consensus_weight").(int64)

	fmt.Fprintf(w, "%s %s %s\n",
		bold.Sprint(util.RightPad(nickname, colWidth)), fingerprint, formatRunning(running))
	fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("addresses:"), formatList(f, "addresses"))
	fmt.Fprintf(w, "  %s %s  %s %s  %s %d\n",
		labelColor.Sprint("country:"), formatString(f, "country"),
		labelColor.Sprint("as:"), formatString(f, "as"),
		labelColor.Sprint("weight:"), weight)
	fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("flags:"), formatList(f, "flags"))
	return nil
}

func logBridgeItem(w io.Writer, f log.Fields) error {
	colWidth := 24

	nickname, _ := f.Get("nickname").(string)
	hashed, _ := f.Get("hashed_fingerprint").(string)
	running, _ := f.Get("running").(bool)

	fmt.Fprintf(w, "%s %s %s\n",
		bold.Sprint(util.RightPad(nickname, colWidth)), hashed, formatRunning(running))
	fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("transports:"), formatList(f, "transports"))
	return nil
}

func logHistoryItem(w io.Writer, f log.Fields) error {
	kind, _ := f.Get("kind").(string)
	fingerprint, _ := f.Get("fingerprint").(string)
	metric, _ := f.Get("metric").(string)
	window, _ := f.Get("window").(string)
	slots, _ := f.Get("slots").(int)
	present, _ := f.Get("present").(int)

	stat := func(name string) string {
		value, _ := f.Get(name).(float64)
		return fmt.Sprintf("%s=%s", labelColor.Sprint(name), formatValue(value))
	}

	fmt.Fprintf(w, "%s %s %s %s (%d/%d)\n",
		util.RightPad(kind, 6), fingerprint, bold.Sprint(metric), window, present, slots)
	fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
		stat("min"), stat("mean"), stat("median"), stat("p95"), stat("max"), stat("last"))
	return nil
}

func logDistributionItem(w io.Writer, f log.Fields) error {
	barWidth := 30

	key, _ := f.Get("key").(string)
	label, _ := f.Get("label").(string)
	count, _ := f.Get("count").(int64)
	fraction, _ := f.Get("fraction").(float64)
	weight, _ := f.Get("weight").(float64)

	filled := int(fraction*float64(barWidth) + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := runningColor.Sprint(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
	fmt.Fprintf(w, "%s %s %6d %6.2f%% %s %s\n",
		util.RightPad(key, 10), bar, count, fraction*100,
		labelColor.Sprint("weight"), formatValue(weight))
	if label != "" && label != key {
		fmt.Fprintf(w, "  %s\n", label)
	}
	return nil
}
