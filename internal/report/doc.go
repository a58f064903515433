// Package report turns a loaded work-order table into the rendered dashboard
// payload: filtered detail rows, scalar KPIs, provider/status pivot tables,
// goal-compliance rows and chart series. Every render is a pure function of
// the table and the filter selection.
package report
