package sales

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ReportState tells "never queried" apart from "queried, nothing found".
type ReportState int

const (
	ReportNotRun ReportState = iota
	ReportEmpty
	ReportPopulated
)

func (s ReportState) String() string {
	switch s {
	case ReportNotRun:
		return "not_run"
	case ReportEmpty:
		return "empty"
	case ReportPopulated:
		return "populated"
	}
	return fmt.Sprintf("ReportState(%d)", int(s))
}

func (s ReportState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReportState) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	switch str {
	case "not_run":
		*s = ReportNotRun
	case "empty":
		*s = ReportEmpty
	case "populated":
		*s = ReportPopulated
	default:
		return fmt.Errorf("unknown report state %q", str)
	}
	return nil
}

// Report is the outcome of a sales query. The zero value is a report that was never run.
type Report struct {
	State             ReportState     `json:"state"`
	Criteria          Criteria        `json:"-"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Results           []Sale          `json:"results"`
	Summary           Summary         `json:"summary"`
}

// RunReport filters sales and summarizes the result.
func RunReport(sales []Sale, c Criteria, commissionPercent decimal.Decimal) Report {
	filtered := Filter(sales, c)

	state := ReportPopulated
	if len(filtered) == 0 {
		state = ReportEmpty
		filtered = []Sale{}
	}

	return Report{
		State:             state,
		Criteria:          c,
		CommissionPercent: commissionPercent,
		Results:           filtered,
		Summary:           Summarize(filtered, commissionPercent),
	}
}
