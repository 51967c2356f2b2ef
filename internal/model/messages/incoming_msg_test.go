package messages

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendMessage(text string, userID int64) error {
	return m.Called(text, userID).Error(0)
}

type apiMock struct {
	mock.Mock
}

func (m *apiMock) CreateTransaction(ctx context.Context, fields map[string]string) (budgetapi.Response, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(budgetapi.Response), args.Error(1)
}

func (m *apiMock) ListCategories(ctx context.Context) ([]budgetapi.Category, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]budgetapi.Category)
	return res, args.Error(1)
}

func response(t *testing.T, body string) budgetapi.Response {
	t.Helper()
	var res budgetapi.Response
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	return res
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", helloMessage, int64(123)).Return(nil).Once()

	err := NewService(sender, &apiMock{}).HandleIncomingMessage(context.Background(), Message{
		Text:   "/start",
		UserID: 123,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", "I don't understand you :(", int64(123)).Return(nil).Once()

	err := NewService(sender, &apiMock{}).HandleIncomingMessage(context.Background(), Message{
		Text:   "/none",
		UserID: 123,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnAddCommand_ShouldSubmitFieldsAndReplyWithRow(t *testing.T) {
	api := &apiMock{}
	api.On("CreateTransaction", mock.Anything, map[string]string{
		"date": "2024-01-01", "amount": "10", "category_id": "2", "notes": "lunch with Bob",
	}).Return(response(t,
		`{"transaction":{"id":1,"date":"2024-01-01","amount":"10","category_id":2,"notes":"lunch with Bob"}}`), nil).Once()

	sender := &senderMock{}
	sender.On("SendMessage",
		"ID | Date | Amount | Category ID | Notes\n1 | 2024-01-01 | 10 | 2 | lunch with Bob\n\nTransaction added successfully!",
		int64(7)).Return(nil).Once()

	err := NewService(sender, api).HandleIncomingMessage(context.Background(), Message{
		Text:   "/add date=2024-01-01 amount=10 category_id=2 notes=lunch with Bob",
		UserID: 7,
	})

	assert.NoError(t, err)
	api.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func Test_OnAddCommand_ShouldRelayServerError(t *testing.T) {
	api := &apiMock{}
	api.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(response(t, `{"error":"invalid amount"}`), nil).Once()
	sender := &senderMock{}
	sender.On("SendMessage", "invalid amount", int64(7)).Return(nil).Once()

	err := NewService(sender, api).HandleIncomingMessage(context.Background(), Message{
		Text:   "/add amount=abc",
		UserID: 7,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnAddCommand_ShouldApologiseWhenServerIsDown(t *testing.T) {
	api := &apiMock{}
	api.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(budgetapi.Response{}, errors.New("dial tcp: refused")).Once()
	sender := &senderMock{}
	sender.On("SendMessage",
		"The budget tracker could not handle that right now.\nAn error occurred while adding the transaction.",
		int64(7)).Return(nil).Once()

	err := NewService(sender, api).HandleIncomingMessage(context.Background(), Message{
		Text:   "/add amount=1",
		UserID: 7,
	})

	assert.Error(t, err)
	sender.AssertExpectations(t)
}

func Test_OnCategoriesCommand_ShouldListCategories(t *testing.T) {
	api := &apiMock{}
	api.On("ListCategories", mock.Anything).
		Return([]budgetapi.Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Rent"}}, nil).Once()
	sender := &senderMock{}
	sender.On("SendMessage", "1: Food\n2: Rent", int64(1)).Return(nil).Once()

	err := NewService(sender, api).HandleIncomingMessage(context.Background(), Message{
		Text:   "/categories",
		UserID: 1,
	})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnParseFormArgs_ShouldRejectLeadingBareWord(t *testing.T) {
	_, err := parseFormArgs("hello amount=1")
	assert.Error(t, err)
}
