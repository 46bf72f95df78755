package badge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DMarby/visit-badge/internal/counter"
	"github.com/DMarby/visit-badge/internal/params"
)

// Query parameters with a special meaning, the rest are passed on to the badge service
const (
	ParamPage    = "page"
	ParamMessage = "message"
	ParamLabel   = "label"
	ParamColor   = "color"
)

// Length of the page hash prefix used as the counter key
const counterKeyLength = 64

// Outcome is the way a badge request was resolved
type Outcome int

// Outcomes
const (
	OutcomeCount Outcome = iota
	OutcomeMissingPage
	OutcomeUnwantedMessage
	OutcomeCounterUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCount:
		return "count"
	case OutcomeMissingPage:
		return "missing_page"
	case OutcomeUnwantedMessage:
		return "unwanted_message"
	case OutcomeCounterUnavailable:
		return "counter_unavailable"
	default:
		return "unknown"
	}
}

// Labels and messages of the error badges
const (
	LabelBadRequest         = "HTTP 400"
	LabelServiceUnavailable = "HTTP 503"

	MessageMissingPage        = "Missing required argument: page"
	MessageUnwantedMessage    = "Argument not needed: message"
	MessageCounterUnavailable = "Error with CountAPI"
)

// Badge contains everything needed to request a badge from the badge service
type Badge struct {
	Label   string
	Message string
	Color   string
	Extra   params.Query
	Outcome Outcome
}

// Hasher derives the counter key for a page
type Hasher interface {
	Sum(page string) (string, error)
}

// Resolver turns the query parameters of a badge request into a Badge
type Resolver struct {
	Hasher       Hasher
	Counter      counter.Provider
	DefaultLabel string
	DefaultColor string
}

// Resolve resolves the badge for the query parameters
// Invalid parameters and counter failures result in an error badge, an error is only returned for unexpected failures
func (r *Resolver) Resolve(ctx context.Context, q params.Query) (*Badge, error) {
	b := &Badge{
		Label: r.DefaultLabel,
		Color: r.DefaultColor,
		Extra: q.Without(ParamPage, ParamMessage, ParamLabel, ParamColor),
	}

	if label, ok := q.Get(ParamLabel); ok {
		b.Label = label
	}

	if color, ok := q.Get(ParamColor); ok {
		b.Color = color
	}

	page, ok := q.Get(ParamPage)
	if !ok {
		b.fail(OutcomeMissingPage, LabelBadRequest, MessageMissingPage)
		return b, nil
	}

	if q.Has(ParamMessage) {
		b.fail(OutcomeUnwantedMessage, LabelBadRequest, MessageUnwantedMessage)
		return b, nil
	}

	pageHash, err := r.Hasher.Sum(page)
	if err != nil {
		return nil, fmt.Errorf("error hashing page: %w", err)
	}

	count, ok := r.Counter.Count(ctx, counterKey(pageHash))
	if !ok || count == 0 {
		b.fail(OutcomeCounterUnavailable, LabelServiceUnavailable, MessageCounterUnavailable)
		return b, nil
	}

	b.Outcome = OutcomeCount
	b.Message = strconv.FormatInt(count, 10)
	return b, nil
}

func (b *Badge) fail(outcome Outcome, label, message string) {
	b.Outcome = outcome
	b.Label = label
	b.Message = message
}

func counterKey(pageHash string) string {
	if len(pageHash) > counterKeyLength {
		return pageHash[:counterKeyLength]
	}

	return pageHash
}
