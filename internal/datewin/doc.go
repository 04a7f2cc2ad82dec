// Package datewin computes the calendar windows used to scope agenda and
// lesson queries.
//
// Every window comes from Compute and a Policy: where the window starts
// (the day itself or that week's Monday), whether a weekend day rolls
// forward to the next Monday, how many whole weeks to shift, and how long
// the window is. The named helpers pin the policies each endpoint needs:
//
//   - AgendaWindow:   today -> Friday, weekend rolls forward
//   - LessonWindow:   Monday on/before today -> Monday+5
//   - NextWeekWindow: next Monday -> Monday+5
//   - DayWindow:      a single day
//
// Windows are inclusive and formatted as YYYYMMDD for the portal URLs.
package datewin
