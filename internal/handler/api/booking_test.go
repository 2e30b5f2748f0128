//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"lendshare/internal/handler/api"
	resdto "lendshare/internal/handler/dto/response"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"
	"lendshare/tests/common/builder"
	"lendshare/tests/common/httptest"
	"lendshare/tests/common/testutil"
	commandsmock "lendshare/tests/mock/commands"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	identity := middleware.NewIdentityMiddleware().RequireUser()
	s.router.POST("/bookings", identity, s.handler.Create)
	s.router.GET("/bookings", identity, s.handler.ListOwn)
	s.router.GET("/bookings/owner", identity, s.handler.ListForOwner)
	s.router.GET("/bookings/:id", identity, s.handler.Get)
	s.router.PATCH("/bookings/:id", identity, s.handler.Decide)
	s.router.PATCH("/bookings/:id/cancel", identity, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	s.Run("success: returns 201 Created with the booking view", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), reqBody.ItemID, b.BookerID, reqBody.Start, reqBody.End).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, b.BookerID)
		s.Equal(http.StatusCreated, rec.Code)

		var response resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.Item.Name, response.Item.Name)
	})

	s.Run("error: 400 Bad Request without identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, uuid.Nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		missing := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing itemId", mutate: testutil.Field("itemId", nil)},
			{name: "missing start", mutate: testutil.Field("start", nil)},
			{name: "missing end", mutate: testutil.Field("end", nil)},
		}
		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, b.BookerID)
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "item not found", commandsError: errs.ErrItemNotFound, expectedStatus: http.StatusNotFound},
			{name: "user not found", commandsError: errs.ErrUserNotFound, expectedStatus: http.StatusNotFound},
			{name: "item unavailable", commandsError: errs.ErrItemUnavailable, expectedStatus: http.StatusBadRequest},
			{name: "invalid interval", commandsError: errs.ErrInvalidBookingInterval, expectedStatus: http.StatusBadRequest},
			{name: "start in past", commandsError: errs.ErrBookingStartInPast, expectedStatus: http.StatusBadRequest},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Create(gomock.Any(), gomock.Any(), b.BookerID, gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, b.BookerID)
				s.Equal(tc.expectedStatus, rec.Code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestDecide() {
	bookingID := uuid.New()
	b := builder.NewBookingBuilder()
	returnView := b.BuildView()
	returnView.ID = bookingID

	s.Run("success: owner approves", func() {
		s.mockCommands.EXPECT().
			Approve(gomock.Any(), bookingID, b.OwnerID, true).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/"+bookingID.String()+"?approved=true", nil, b.OwnerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: owner rejects", func() {
		s.mockCommands.EXPECT().
			Approve(gomock.Any(), bookingID, b.OwnerID, false).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/"+bookingID.String()+"?approved=false", nil, b.OwnerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on missing approved parameter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/"+bookingID.String(), nil, b.OwnerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/not-a-uuid?approved=true", nil, b.OwnerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: errs.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: errs.ErrBookingAccessDenied, expectedStatus: http.StatusForbidden},
			{name: "already decided", commandsError: errs.ErrBookingAlreadyDecided, expectedStatus: http.StatusBadRequest},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Approve(gomock.Any(), bookingID, b.OwnerID, true).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
					"/bookings/"+bookingID.String()+"?approved=true", nil, b.OwnerID)
				s.Equal(tc.expectedStatus, rec.Code)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	b := builder.NewBookingBuilder()
	returnView := b.BuildView()
	returnView.ID = bookingID
	returnView.Status = "CANCELED"

	s.Run("success: booker cancels own waiting booking", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), bookingID, b.BookerID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/"+bookingID.String()+"/cancel", nil, b.BookerID)
		s.Equal(http.StatusOK, rec.Code)

		var response resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("CANCELED", response.Status)
	})

	s.Run("error: 404 Not Found when nothing cancelable matches", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), bookingID, b.BookerID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/bookings/"+bookingID.String()+"/cancel", nil, b.BookerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	b := builder.NewBookingBuilder()
	returnView := b.BuildView()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), b.BookerID, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings/"+bookingID.String(), nil, b.BookerID)
		s.Equal(http.StatusOK, rec.Code)

		var response resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.Booker.ID, response.Booker.ID)
	})

	s.Run("error: 404 Not Found for invisible booking", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), b.BookerID, bookingID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings/"+bookingID.String(), nil, b.BookerID)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings/not-a-uuid", nil, b.BookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	b := builder.NewBookingBuilder()
	items := []*queries.BookingView{b.BuildView(), b.BuildView()}

	s.Run("success: defaults to state ALL and first page", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), b.BookerID, "ALL", int32(0), int32(queries.DefaultPageSize)).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, b.BookerID)
		s.Equal(http.StatusOK, rec.Code)

		var response []*resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Len(response, len(items))
	})

	s.Run("success: passes state and paging through", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), b.BookerID, "past", int32(20), int32(5)).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?state=past&from=20&size=5", nil, b.BookerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: owner listing uses the owner query", func() {
		s.mockQueries.EXPECT().
			ListForOwner(gomock.Any(), b.OwnerID, "WAITING", int32(0), int32(queries.DefaultPageSize)).
			Return(items[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings/owner?state=WAITING", nil, b.OwnerID)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request for unknown state", func() {
		s.mockQueries.EXPECT().
			ListForBooker(gomock.Any(), b.BookerID, "UNSUPPORTED_STATUS", int32(0), int32(queries.DefaultPageSize)).
			Return(nil, errs.ErrUnknownBookingState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?state=UNSUPPORTED_STATUS", nil, b.BookerID)
		s.Equal(http.StatusBadRequest, rec.Code)

		var body map[string]string
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal("Unknown state: UNSUPPORTED_STATUS", body["error"])
	})

	s.Run("error: 400 Bad Request for negative from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?from=-1", nil, b.BookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request for zero size", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?size=0", nil, b.BookerID)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
