package schedule

import (
	"errors"

	"github.com/sourcegraph/conc/iter"

	"github.com/pfrederiksen/class-schedule/internal/jalali"
	"github.com/pfrederiksen/class-schedule/internal/logger"
	"github.com/pfrederiksen/class-schedule/internal/persian"
)

type scanState int

const (
	seekMarker scanState = iota
	wantStart
	wantEnd
)

type endpoint struct {
	components persian.DateComponents
	date       *jalali.GregorianDate
	err        error
}

// Assemble scans one class block for marker, start, end triples and converts them.
//
// A marker or header that interrupts a triple abandons it. Sessions whose start or end
// date cannot be converted are dropped; a malformed time is logged but keeps the session,
// leaving the serializer to decide. Valid sessions are numbered 1, 2, 3... in page order.
func Assemble(block Block) (ClassSchedule, []Skip) {
	cs := ClassSchedule{ClassName: block.ClassName, Sessions: []Session{}}
	var skips []Skip

	state := seekMarker
	attempt := 0
	var startText string

	abandon := func() {
		if state != seekMarker {
			skips = append(skips, skipped(block.ClassName, attempt, SkipIncomplete, nil))
		}
		state = seekMarker
	}

	for _, c := range block.Cells {
		switch c.Kind {
		case CellHeader:
			abandon()
		case CellMarker:
			abandon()
			attempt++
			state = wantStart
		case CellValue:
			switch state {
			case wantStart:
				startText = c.Text
				state = wantEnd
			case wantEnd:
				state = seekMarker
				sess, skip, ok := buildSession(block.ClassName, attempt, len(cs.Sessions)+1, startText, c.Text)
				if !ok {
					skips = append(skips, skip)
					continue
				}
				cs.Sessions = append(cs.Sessions, sess)
				logger.IncrCounter("sessions.assembled")
			}
		}
	}
	abandon()

	logger.Debug("Assembled class", logger.Fields{
		"class":    block.ClassName,
		"sessions": len(cs.Sessions),
		"skipped":  len(skips),
	})
	return cs, skips
}

func buildSession(className string, attempt, number int, startText, endText string) (Session, Skip, bool) {
	start := convertEndpoint(className, attempt, startText)
	if start.date == nil {
		return Session{}, skipped(className, attempt, SkipStartDate, start.err), false
	}
	end := convertEndpoint(className, attempt, endText)
	if end.date == nil {
		return Session{}, skipped(className, attempt, SkipEndDate, end.err), false
	}

	return Session{
		Number:         number,
		StartPersian:   start.components,
		StartGregorian: start.date,
		EndPersian:     end.components,
		EndGregorian:   end.date,
		UID:            UID(className, number, start.date),
	}, Skip{}, true
}

func convertEndpoint(className string, attempt int, text string) endpoint {
	c := persian.ExtractComponents(text)
	g, err := jalali.Convert(c)
	if errors.Is(err, jalali.ErrMalformedTime) {
		logger.Warn("Malformed session time, keeping date only", logger.Fields{
			"class":   className,
			"session": attempt,
			"text":    text,
		})
		logger.IncrCounter("dates.malformed_time")
	}
	return endpoint{components: c, date: g, err: err}
}

func skipped(className string, attempt int, reason SkipReason, err error) Skip {
	logger.Warn("Skipping session", logger.Fields{
		"class":   className,
		"session": attempt,
		"reason":  string(reason),
	})
	logger.IncrCounter("sessions.skipped." + string(reason))
	return Skip{ClassName: className, Session: attempt, Reason: reason, Err: err}
}

// AssembleAll assembles every block using up to workers goroutines. Results keep the
// input class order, and skips are ordered by class.
func AssembleAll(blocks []Block, workers int) ([]ClassSchedule, []Skip) {
	if workers < 1 {
		workers = 1
	}

	type result struct {
		schedule ClassSchedule
		skips    []Skip
	}
	mapper := iter.Mapper[Block, result]{MaxGoroutines: workers}
	results := mapper.Map(blocks, func(b *Block) result {
		cs, skips := Assemble(*b)
		return result{schedule: cs, skips: skips}
	})

	classes := make([]ClassSchedule, 0, len(blocks))
	var skips []Skip
	for _, r := range results {
		classes = append(classes, r.schedule)
		skips = append(skips, r.skips...)
	}
	return classes, skips
}
