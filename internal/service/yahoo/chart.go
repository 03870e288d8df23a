package yahoo

import (
	"fmt"

	"github.com/guregu/null/v6"

	"FinWeave/internal/domain/models"
	"FinWeave/pkg/util"
)

// Wire types for the chart v8 payload. Nulls inside the quote arrays decode
// to nil pointers; arrays shorter than the timestamp list are treated as
// padded with nulls.
type chartResponse struct {
	Chart struct {
		Result []chartResult  `json:"result"`
		Error  *chartAPIError `json:"error"`
	} `json:"chart"`
}

type chartAPIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

func (r *chartResponse) toSeries() (models.Series, error) {
	if r.Chart.Error != nil {
		return nil, fmt.Errorf("%w: api error %s: %s", ErrBadPayload, r.Chart.Error.Code, r.Chart.Error.Description)
	}
	if len(r.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty result", ErrBadPayload)
	}
	res := r.Chart.Result[0]
	if res.Timestamp == nil {
		return nil, fmt.Errorf("%w: missing timestamps", ErrBadPayload)
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: missing quote", ErrBadPayload)
	}
	q := res.Indicators.Quote[0]

	series := make(models.Series, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		series = append(series, models.Record{
			Date:   util.UnixToDate(ts),
			Open:   floatAt(q.Open, i),
			High:   floatAt(q.High, i),
			Low:    floatAt(q.Low, i),
			Close:  floatAt(q.Close, i),
			Volume: intAt(q.Volume, i),
		})
	}
	return series, nil
}

func floatAt(xs []*float64, i int) null.Float {
	if i >= len(xs) || xs[i] == nil {
		return null.Float{}
	}
	return null.FloatFrom(*xs[i])
}

func intAt(xs []*int64, i int) null.Int {
	if i >= len(xs) || xs[i] == nil {
		return null.Int{}
	}
	return null.IntFrom(*xs[i])
}
