// SPDX-License-Identifier: Apache-2.0

package chart

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/xataio/benchhistory/pkg/history"
)

const defaultPageTitle = "Benchmark results"

type options struct {
	pageTitle string
	groups    []string
}

type Option func(*options)

// WithPageTitle sets the title of the HTML page
func WithPageTitle(title string) Option {
	return func(o *options) {
		o.pageTitle = title
	}
}

// WithGroups restricts the page to the named groups
func WithGroups(groups ...string) Option {
	return func(o *options) {
		o.groups = groups
	}
}

// Build generates one line chart per benchmark of every group, with the
// short commit id of each run on the x-axis. Charts are sorted by title.
func Build(s *history.Suite, opts ...Option) (*components.Page, error) {
	o := &options{pageTitle: defaultPageTitle}
	for _, opt := range opts {
		opt(o)
	}

	groups := o.groups
	if len(groups) == 0 {
		groups = s.Groups()
	}

	var all []*charts.Line
	for _, group := range groups {
		series, err := s.Series(group)
		if err != nil {
			return nil, err
		}
		for _, sr := range series {
			all = append(all, lineChart(group, sr))
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Title.Title < all[j].Title.Title
	})

	page := components.NewPage()
	page.SetPageTitle(o.pageTitle)
	page.SetLayout("flex")
	for _, c := range all {
		page.AddCharts(c)
	}
	return page, nil
}

// Render writes the chart page for s to w.
func Render(w io.Writer, s *history.Suite, opts ...Option) error {
	page, err := Build(s, opts...)
	if err != nil {
		return err
	}
	return page.Render(w)
}

func lineChart(group string, sr history.Series) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s (%s)", sr.Name, group),
			Subtitle: sr.Unit,
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: sr.Unit}),
		charts.WithAnimation(false))

	xs := make([]string, len(sr.Points))
	data := make([]opts.LineData, len(sr.Points))
	for i, p := range sr.Points {
		xs[i] = history.Commit{ID: p.CommitID}.ShortID()
		data[i] = opts.LineData{Value: p.Value}
	}

	chart.SetXAxis(xs)
	chart.AddSeries(sr.Name, data)
	return chart
}
