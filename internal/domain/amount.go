package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AmountKind distinguishes a real salary number from the documented
// sentinel states of the output contract.
type AmountKind int

const (
	// AmountMissing - parsing found nothing; serialized as null.
	AmountMissing AmountKind = iota
	// AmountNumber - a real value in VND/month.
	AmountNumber
	// AmountNoInfo - the listing advertised a negotiable salary.
	AmountNoInfo
	// AmountAbnormal - flagged by the outlier pass.
	AmountAbnormal
)

const (
	sentinelNoInfo   = "no_info"
	sentinelAbnormal = "abnormal"
)

// Amount is a salary figure or one of the sentinel states. The zero value
// is the missing state.
type Amount struct {
	Kind  AmountKind
	Value float64
}

func Number(v float64) Amount { return Amount{Kind: AmountNumber, Value: v} }
func NoInfo() Amount          { return Amount{Kind: AmountNoInfo} }
func Abnormal() Amount        { return Amount{Kind: AmountAbnormal} }
func Missing() Amount         { return Amount{} }

// ParseAmount reads a stored column value back, inverting String.
// Unrecognized text degrades to the missing state.
func ParseAmount(s string) Amount {
	switch s {
	case "":
		return Amount{}
	case sentinelNoInfo:
		return NoInfo()
	case sentinelAbnormal:
		return Abnormal()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(v)
	}
	return Amount{}
}

// String renders the value the way the indexed column stores it.
func (a Amount) String() string {
	switch a.Kind {
	case AmountNumber:
		return strconv.FormatFloat(a.Value, 'f', -1, 64)
	case AmountNoInfo:
		return sentinelNoInfo
	case AmountAbnormal:
		return sentinelAbnormal
	default:
		return ""
	}
}

// MarshalJSON emits the number, the sentinel string, or null, matching the
// column contract consumed by the reporting layer.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AmountNumber:
		return json.Marshal(a.Value)
	case AmountNoInfo:
		return json.Marshal(sentinelNoInfo)
	case AmountAbnormal:
		return json.Marshal(sentinelAbnormal)
	default:
		return []byte("null"), nil
	}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Amount{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*a = Number(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	switch s {
	case sentinelNoInfo:
		*a = NoInfo()
	case sentinelAbnormal:
		*a = Abnormal()
	case "":
		*a = Amount{}
	default:
		return fmt.Errorf("amount: unknown sentinel %q", s)
	}
	return nil
}
