//go:build e2e

package availability_test

import (
	"net/http"
	"testing"

	resdto "github.com/deanb221/caravan/internal/handler/dto/response"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/queries"
	"github.com/deanb221/caravan/tests/common/dbtest"
	"github.com/deanb221/caravan/tests/common/httptest"
	"github.com/deanb221/caravan/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
)

type availabilityTestSuite struct {
	e2e.SharedSuite
}

func TestAvailabilitySuite(t *testing.T) {
	suite.Run(t, new(availabilityTestSuite))
}

func (s *availabilityTestSuite) TestCatalog() {
	s.Run("list returns every seeded caravan", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/caravans", nil, nil)

		var body resdto.CaravanListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		slugs := make([]string, 0, len(body.Caravans))
		for _, c := range body.Caravans {
			slugs = append(slugs, c.Slug)
		}
		s.ElementsMatch([]string{dbtest.SwiftSlug, dbtest.BaileySlug}, slugs)
	})

	s.Run("detail carries booked dates and the season gate", func() {
		caravanID := dbtest.CaravanID(s.T(), s.DB, dbtest.SwiftSlug)
		dbtest.BlockDates(s.T(), s.DB, caravanID, civil.MustParseDate("2025-03-21"), civil.MustParseDate("2025-03-22"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/caravans/the-swift", nil, nil)

		var view queries.CaravanView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.Equal("The Swift", view.Name)
		s.Equal(int64(dbtest.SwiftWeekendPence), view.WeekendTotalPence)
		s.Equal([]string{"2025-03-21", "2025-03-22"}, civil.Strings(view.BookedDates))
		s.Equal("2025-03-01", view.MinBookableDate.String())
	})

	s.Run("unknown slug is not found", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/caravans/no-such-van", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Caravan not found")
	})
}

func (s *availabilityTestSuite) TestCalendar() {
	s.Run("only open fridays after the gate allow check-in", func() {
		caravanID := dbtest.CaravanID(s.T(), s.DB, dbtest.SwiftSlug)
		dbtest.BlockDates(s.T(), s.DB, caravanID, civil.MustParseDate("2025-03-14"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/calendar?from=2025-02-28&to=2025-03-21", nil, nil)

		var view queries.CalendarView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.Require().Len(view.Days, 22)

		var allowed, booked []string
		for _, d := range view.Days {
			if d.CheckInAllowed {
				allowed = append(allowed, d.Date.String())
			}
			if d.Booked {
				booked = append(booked, d.Date.String())
			}
		}
		s.Equal([]string{"2025-03-07", "2025-03-21"}, allowed)
		s.Equal([]string{"2025-03-14"}, booked)
	})

	s.Run("too wide a window is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/calendar?from=2025-03-01&to=2025-12-31", nil, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("reversed window is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/calendar?from=2025-03-10&to=2025-03-01", nil, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *availabilityTestSuite) TestCheckOutOptions() {
	s.Run("open friday offers both packages", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/checkouts?checkIn=2025-03-07", nil, nil)

		var view queries.CheckOutOptionsView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		want := []queries.CheckOutOption{
			{Date: civil.MustParseDate("2025-03-10"), BookingType: "weekend", TotalPence: dbtest.SwiftWeekendPence, Nights: 3},
			{Date: civil.MustParseDate("2025-03-14"), BookingType: "weekly", TotalPence: dbtest.SwiftWeeklyPence, Nights: 7},
		}
		if diff := cmp.Diff(want, view.Options); diff != "" {
			s.T().Errorf("options mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("booked midweek day removes the weekly option", func() {
		caravanID := dbtest.CaravanID(s.T(), s.DB, dbtest.SwiftSlug)
		dbtest.BlockDates(s.T(), s.DB, caravanID, civil.MustParseDate("2025-03-12"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/checkouts?checkIn=2025-03-07", nil, nil)

		var view queries.CheckOutOptionsView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.Require().Len(view.Options, 1)
		s.Equal("weekend", view.Options[0].BookingType)
	})

	s.Run("non-friday check-in is unprocessable", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/caravans/the-swift/checkouts?checkIn=2025-03-08", nil, nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Invalid date selection")
	})
}

func (s *availabilityTestSuite) TestQuote() {
	s.Run("weekly stay is quoted at the weekly total", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/caravans/the-bailey/quote",
			map[string]string{"checkIn": "2025-03-07", "checkOut": "2025-03-14"}, nil)

		var quote queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &quote)
		s.Equal("weekly", quote.BookingType)
		s.Equal(int64(dbtest.BaileyWeeklyPence), quote.TotalPence)
		s.Equal(7, quote.Nights)
		s.Equal("15:00-16:00", quote.CollectionWindow)
	})

	s.Run("booked interior day is a conflict listing the day", func() {
		caravanID := dbtest.CaravanID(s.T(), s.DB, dbtest.BaileySlug)
		dbtest.BlockDates(s.T(), s.DB, caravanID, civil.MustParseDate("2025-03-09"))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/caravans/the-bailey/quote",
			map[string]string{"checkIn": "2025-03-07", "checkOut": "2025-03-10"}, nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already booked")
		var detail resdto.ConflictDetail
		httptest.AssertErrorDetail(s.T(), w, &detail)
		s.Equal([]string{"2025-03-09"}, detail.Conflicts)
	})

	s.Run("season gate moves to next year once passed", func() {
		s.Clock.AddDays(60) // mid March 2025

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/caravans/the-bailey/quote",
			map[string]string{"checkIn": "2025-03-21", "checkOut": "2025-03-24"}, nil)

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Invalid date selection")
	})
}
