package messages

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"max.ks1230/budget-tracker/internal/clients/budgetapi"
	"max.ks1230/budget-tracker/internal/model/submission"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am the budget tracker bot. Send /help to see what I can do."
	loveToTalkMessage     = "I would love to talk about it more!"
	noCategoriesMessage   = "There are no categories yet"
	helpMessage           = `/add date=YYYY-MM-DD amount=10.50 category_id=1 notes=free text
/categories - list categories`

	budgetUnavailableMessage   = "The budget tracker could not handle that right now."
	incorrectUsageMessage      = "That is an incorrect command usage"
	cannotGetCategoriesMessage = "Can't get categories atm. Try later"
)

const (
	startCommand      = "/start"
	helpCommand       = "/help"
	addCommand        = "/add"
	categoriesCommand = "/categories"
)

const rowHeader = "ID | Date | Amount | Category ID | Notes"

type budgetAPI interface {
	CreateTransaction(ctx context.Context, fields map[string]string) (budgetapi.Response, error)
	ListCategories(ctx context.Context) ([]budgetapi.Category, error)
}

type handler func(ctx context.Context, arg string, userID int64) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	api         budgetAPI
}

func newHandler(api budgetAPI) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		api:         api,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, userID)
	}
	return dontUnderstandMessage, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[addCommand] = s.handleAdd
	m[categoriesCommand] = s.handleCategories

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ int64) (string, error) {
	return helloMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string, _ int64) (string, error) {
	return helpMessage, nil
}

// handleAdd treats the message as a filled transaction form and runs it
// through the same submission handler the other front ends use.
func (s *HandlerService) handleAdd(ctx context.Context, arg string, _ int64) (string, error) {
	fields, err := parseFormArgs(arg)
	if err != nil || len(fields) == 0 {
		return incorrectUsageMessage + "\n" + helpMessage, nil
	}

	table := &submission.RowBuffer{}
	notes := &collectingNotifier{}
	h := submission.New(s.api, submission.NewFieldForm(fields), table, notes)

	res := h.HandleSubmit(ctx, submission.NoopEvent{})

	lines := make([]string, 0, 4)
	if rows := table.Rows(); len(rows) > 0 {
		lines = append(lines, rowHeader)
		for _, row := range rows {
			lines = append(lines, formatRow(row))
		}
		lines = append(lines, "")
	}
	lines = append(lines, notes.messages()...)
	reply := strings.Join(lines, "\n")

	if res.Outcome == submission.OutcomeFailed {
		return reply, errors.Wrap(res.Err, "handle add")
	}
	return reply, nil
}

func (s *HandlerService) handleCategories(ctx context.Context, _ string, _ int64) (string, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return cannotGetCategoriesMessage, errors.Wrap(err, "handle categories")
	}
	if len(categories) == 0 {
		return noCategoriesMessage, nil
	}

	lines := make([]string, 0, len(categories))
	for _, c := range categories {
		lines = append(lines, fmt.Sprintf("%d: %s", c.ID, c.Name))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ int64) (string, error) {
	return loveToTalkMessage, nil
}

type collectingNotifier struct {
	mu   sync.Mutex
	list []string
}

func (n *collectingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, message)
}

func (n *collectingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.list...)
}
