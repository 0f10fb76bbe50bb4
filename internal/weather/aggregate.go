package weather

import (
	"sort"
	"time"
)

// DaySplit is the hour-of-day boundary between day and night. A sample is
// "day" when its local hour is in [StartHour, EndHour). Location selects the
// clock used for both the hour and the calendar date; nil means UTC.
type DaySplit struct {
	StartHour int            `json:"day_start_hour" validate:"gte=0,lte=23"`
	EndHour   int            `json:"day_end_hour" validate:"lte=24,gtfield=StartHour"`
	Location  *time.Location `json:"-" validate:"-"`
}

// DefaultDaySplit matches the 06:00–18:00 day window.
func DefaultDaySplit() DaySplit {
	return DaySplit{StartHour: 6, EndHour: 18}
}

// In returns a copy of the split evaluated in loc.
func (s DaySplit) In(loc *time.Location) DaySplit {
	s.Location = loc
	return s
}

// Validate checks the hour bounds.
func (s DaySplit) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fromValidator(err)
	}
	return nil
}

func (s DaySplit) zone() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// IsDay classifies t.
func (s DaySplit) IsDay(t time.Time) bool {
	h := t.In(s.zone()).Hour()
	return h >= s.StartHour && h < s.EndHour
}

// LocalDate returns midnight of t's calendar date in the split's zone.
func (s DaySplit) LocalDate(t time.Time) time.Time {
	lt := t.In(s.zone())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

type bucketKey struct {
	date  time.Time
	isDay bool
}

type bucketAcc struct {
	temp, feels, humidity mean
	count                 int
}

// Aggregate groups samples by (local calendar date, day/night) and averages
// each field over the samples that carry it. Samples with missing fields
// still count toward SampleCount. Buckets come back ordered by date, with day
// before night. Empty input yields an empty slice.
func Aggregate(samples []ForecastSample, split DaySplit) ([]DayNightBucket, error) {
	if err := split.Validate(); err != nil {
		return nil, err
	}

	groups := make(map[bucketKey]*bucketAcc)
	for i, s := range samples {
		if s.Timestamp.IsZero() {
			return nil, &ValidationError{Field: "timestamp", Index: i, Reason: "is missing"}
		}

		k := bucketKey{date: split.LocalDate(s.Timestamp), isDay: split.IsDay(s.Timestamp)}
		acc, ok := groups[k]
		if !ok {
			acc = &bucketAcc{}
			groups[k] = acc
		}

		acc.count++
		if s.Temperature != nil {
			acc.temp.add(*s.Temperature)
		}
		if s.FeelsLike != nil {
			acc.feels.add(*s.FeelsLike)
		}
		if s.Humidity != nil {
			acc.humidity.add(float64(*s.Humidity))
		}
	}

	keys := make([]bucketKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].isDay && !keys[j].isDay
	})

	buckets := make([]DayNightBucket, 0, len(keys))
	for _, k := range keys {
		acc := groups[k]
		buckets = append(buckets, DayNightBucket{
			Date:           k.date,
			IsDay:          k.isDay,
			AvgTemperature: acc.temp.value(),
			AvgFeelsLike:   acc.feels.value(),
			AvgHumidity:    acc.humidity.value(),
			SampleCount:    acc.count,
		})
	}
	return buckets, nil
}

// Within returns the samples whose timestamp lies in [from, to], keeping input order.
func Within(samples []ForecastSample, from, to time.Time) []ForecastSample {
	out := make([]ForecastSample, 0, len(samples))
	for _, s := range samples {
		if s.Timestamp.Before(from) || s.Timestamp.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}
