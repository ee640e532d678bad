//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/handler/api"
	resdto "github.com/deanb221/caravan/internal/handler/dto/response"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/queries"
	"github.com/deanb221/caravan/tests/common/httptest"
	queriesmock "github.com/deanb221/caravan/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	friday   = civil.NewDate(2025, time.March, 7)
	monday   = civil.NewDate(2025, time.March, 10)
	nextFri  = civil.NewDate(2025, time.March, 14)
	saturday = civil.NewDate(2025, time.March, 8)
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	h := api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/caravans/:slug/calendar", h.Calendar)
	s.router.GET("/caravans/:slug/checkouts", h.CheckOuts)
	s.router.POST("/caravans/:slug/quote", h.Quote)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

// ================================================================================
// TestCalendar
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestCalendar() {
	s.Run("success: explicit window", func() {
		view := &queries.CalendarView{
			CaravanSlug:     "the-swift",
			MinBookableDate: civil.NewDate(2025, time.March, 1),
			From:            friday,
			To:              saturday,
			Days: []queries.CalendarDay{
				{Date: friday, CheckInAllowed: true},
				{Date: saturday, Booked: true},
			},
		}
		s.mockQueries.EXPECT().Calendar(gomock.Any(), "the-swift", friday, saturday).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/calendar?from=2025-03-07&to=2025-03-08", nil, nil)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`{
			"caravanSlug": "the-swift",
			"minBookableDate": "2025-03-01",
			"from": "2025-03-07",
			"to": "2025-03-08",
			"days": [
				{"date": "2025-03-07", "booked": false, "checkInAllowed": true},
				{"date": "2025-03-08", "booked": true, "checkInAllowed": false}
			]
		}`, rec.Body.String())
	})

	s.Run("success: omitted window is left to the query", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), "the-swift", civil.Date{}, civil.Date{}).
			Return(&queries.CalendarView{CaravanSlug: "the-swift"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/calendar", nil, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/calendar?from=March", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("error: 400 when window is too wide", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(errs.ErrCalendarTooWide, "400 days requested")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/calendar?from=2025-01-01&to=2026-02-04", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 404 for unknown caravan", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), "nope", gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrCaravanNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/nope/calendar", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Caravan not found")
	})
}

// ================================================================================
// TestCheckOuts
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestCheckOuts() {
	s.Run("success", func() {
		view := &queries.CheckOutOptionsView{
			CaravanSlug: "the-swift",
			CheckIn:     friday,
			Options: []queries.CheckOutOption{
				{Date: monday, BookingType: "weekend", TotalPence: 12000, Nights: 3},
				{Date: nextFri, BookingType: "weekly", TotalPence: 50000, Nights: 7},
			},
		}
		s.mockQueries.EXPECT().CheckOutOptions(gomock.Any(), "the-swift", friday).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/checkouts?checkIn=2025-03-07", nil, nil)

		var body queries.CheckOutOptionsView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Options, body.Options)
	})

	s.Run("error: 400 without checkIn", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/checkouts", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "checkIn is required")
	})

	s.Run("error: 422 when check-in is not valid", func() {
		s.mockQueries.EXPECT().CheckOutOptions(gomock.Any(), "the-swift", saturday).
			Return(nil, errs.Wrap(booking.ErrInvalidSelection, "check-in must be a Friday")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/caravans/the-swift/checkouts?checkIn=2025-03-08", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date selection")
	})
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestQuote() {
	url := "/caravans/the-swift/quote"
	reqBody := map[string]any{"checkIn": "2025-03-07", "checkOut": "2025-03-10"}

	s.Run("success: weekend quote", func() {
		view := &queries.QuoteView{
			CaravanSlug:      "the-swift",
			CheckIn:          friday,
			CheckOut:         monday,
			BookingType:      "weekend",
			TotalPence:       12000,
			Nights:           3,
			CollectionWindow: booking.CollectionWindow,
			ReturnWindow:     booking.ReturnWindow,
		}
		s.mockQueries.EXPECT().Quote(gomock.Any(), "the-swift", friday, monday).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)

		var body queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(*view, body)
	})

	s.Run("error: 400 on missing checkOut", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"checkIn": "2025-03-07"}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 with conflicting dates", func() {
		conflict := &booking.ConflictError{Dates: []civil.Date{saturday}}
		s.mockQueries.EXPECT().Quote(gomock.Any(), "the-swift", friday, monday).Return(nil, conflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already booked")
		var detail resdto.ConflictDetail
		httptest.AssertErrorDetail(s.T(), rec, &detail)
		s.Equal([]string{"2025-03-08"}, detail.Conflicts)
	})

	s.Run("error: 422 when check-out breaks the package rules", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), "the-swift", friday, civil.NewDate(2025, time.March, 12)).
			Return(nil, errs.Wrap(booking.ErrInvalidSelection, "check-out must be 3 or 7 nights")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"checkIn": "2025-03-07", "checkOut": "2025-03-12"}, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid date selection")
	})
}
