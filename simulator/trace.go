package simulator

import (
	"fmt"
	"log"
	"time"
)

// Entry is one line of the execution trace.
type Entry struct {
	When   time.Time
	Action string
	Detail string
}

func (entry Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", entry.When.Format("15:04:05.000"), entry.Action, entry.Detail)
}

func (sim *Simulator) trace(action string, detail string) {
	sim.Trace = append(sim.Trace, Entry{
		When:   time.Now(),
		Action: action,
		Detail: detail,
	})

	if sim.Verbose {
		log.Printf("sim: %s: %s", action, detail)
	}
}
