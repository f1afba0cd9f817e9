package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pfrederiksen/class-schedule/internal/calendar"
	"github.com/pfrederiksen/class-schedule/internal/schedule"
)

func main() {
	// A sample class as it appears on the portal's dates page
	block := schedule.Block{
		ClassName: "ریاضی عمومی ۱",
		Cells: []schedule.Cell{
			schedule.Classify("جلسه", ""),
			schedule.Classify("یکشنبه ۱۳ مهر ۱۴۰۴ - ۱۴:۰۰", ""),
			schedule.Classify("یکشنبه ۱۳ مهر ۱۴۰۴ - ۱۵:۳۰", ""),
			schedule.Classify("جلسه", ""),
			schedule.Classify("پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۸:۰۰", ""),
			schedule.Classify("پنج شنبه ۲۴ مهر ۱۴۰۴ - ۱۹:۳۰", ""),
		},
	}
	class, _ := schedule.Assemble(block)

	var buf bytes.Buffer
	report, err := calendar.NewSerializer("", "").Write(&buf, []schedule.ClassSchedule{class})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating calendar: %v\n", err)
		os.Exit(1)
	}

	filename := "test-class-schedule.ics"
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s (%d events)\n\n", filename, report.Events)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Print(buf.String())
}
