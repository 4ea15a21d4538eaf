package bot

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grana/internal/cache"
	"grana/internal/config"
	"grana/internal/core"
	"grana/internal/log"
	"grana/internal/session"
)

// API is the slice of the Telegram client the router needs.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Storage covers every persistence operation the dialogue reaches.
type Storage interface {
	UpsertUser(ctx context.Context, telegramID, firstName string) error
	ListCategories(ctx context.Context, kind core.Kind) ([]core.Category, error)
	ListCardSubcategories(ctx context.Context) ([]core.Category, error)
	AddTransaction(ctx context.Context, tx core.Transaction) (int64, error)
	DeleteTransaction(ctx context.Context, id int64) (bool, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	UpdateTransactionField(ctx context.Context, id int64, field core.EditableField, value any) (bool, error)
	BudgetStatus(ctx context.Context, category string, month, year int) (core.BudgetStatus, error)
	UpsertBudget(ctx context.Context, category string, limit core.Money, month, year int) error
	ListBudgets(ctx context.Context, month, year int) ([]core.Budget, error)
	ExpensesForCategory(ctx context.Context, category string, month, year int) ([]core.Transaction, error)
	MonthlyTotals(ctx context.Context, month, year int) ([]core.CategoryTotal, error)
	MonthlyEntries(ctx context.Context, month, year int) ([]core.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]core.Transaction, error)
	Wipe(ctx context.Context) error
}

// Router dispatches Telegram updates to command, free-text and
// callback handlers, keyed by the per-chat session.
type Router struct {
	api        API
	store      Storage
	sessions   *session.Store
	cfg        *config.Config
	logger     *log.Logger
	categories *cache.TTL[[]core.Category]
	now        func() time.Time
}

func NewRouter(api API, store Storage, sessions *session.Store, cfg *config.Config, logger *log.Logger) *Router {
	loc := cfg.Location()
	return &Router{
		api:        api,
		store:      store,
		sessions:   sessions,
		cfg:        cfg,
		logger:     logger.WithComponent(log.ComponentBot),
		categories: cache.New[[]core.Category](8, 5*time.Minute),
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// listCategories caches the category menus; the seed set rarely
// changes and every menu open would otherwise hit the database.
func (r *Router) listCategories(ctx context.Context, kind core.Kind) ([]core.Category, error) {
	key := "categories/" + string(kind)
	if cats, ok := r.categories.Get(key); ok {
		return cats, nil
	}
	cats, err := r.store.ListCategories(ctx, kind)
	if err != nil {
		return nil, err
	}
	r.categories.Set(key, cats)
	return cats, nil
}

func (r *Router) listCardSubcategories(ctx context.Context) ([]core.Category, error) {
	if subs, ok := r.categories.Get("subcategories"); ok {
		return subs, nil
	}
	subs, err := r.store.ListCardSubcategories(ctx)
	if err != nil {
		return nil, err
	}
	r.categories.Set("subcategories", subs)
	return subs, nil
}

// HandleUpdate processes a single update. Unauthorized senders are
// logged and told off before any state is touched.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		r.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if !r.cfg.Authorized(msg.From.ID) {
		r.logger.Warn("unauthorized message", log.FieldUserID, msg.From.ID)
		r.send(msg.Chat.ID, "⛔ Você não está autorizado a usar este bot.", nil)
		return
	}

	key := session.Key{UserID: msg.From.ID, ChatID: msg.Chat.ID}
	sess := r.sessions.Get(key)

	if msg.IsCommand() {
		r.handleCommand(ctx, msg, key, sess)
		return
	}
	r.handleText(ctx, msg, key, sess)
}

func (r *Router) handleCommand(ctx context.Context, msg *tgbotapi.Message, key session.Key, sess *session.Session) {
	r.logger.Info("command", log.FieldUserID, msg.From.ID, log.FieldCommand, msg.Command())
	sess.Reset()

	switch msg.Command() {
	case "start":
		id := strconv.FormatInt(msg.From.ID, 10)
		if err := r.store.UpsertUser(ctx, id, msg.From.FirstName); err != nil {
			r.logger.Error("upsert user", log.FieldUserID, msg.From.ID, log.FieldError, err)
		}
		r.send(msg.Chat.ID, mainMenuText(msg.From.FirstName), mainMenuKeyboard())
	case "gastou":
		r.startTransaction(ctx, msg.Chat.ID, sess, core.Expense)
	case "ganhou":
		r.startTransaction(ctx, msg.Chat.ID, sess, core.Income)
	case "saldo":
		r.showBalance(ctx, msg.Chat.ID, sess)
	case "relatorio":
		r.promptEdit(sess, msg.Chat.ID, "📈 *Relatórios*\n\nEscolha um relatório:", reportsKeyboard())
	case "orcamento":
		r.promptEdit(sess, msg.Chat.ID, "🎯 *Orçamentos*\n\nO que você quer fazer?", budgetsKeyboard())
	case "zerar":
		r.send(msg.Chat.ID,
			"⚠️ *Atenção!*\n\nIsso apaga *todos* os lançamentos e orçamentos. Tem certeza?",
			wipeConfirmKeyboard())
	default:
		r.send(msg.Chat.ID, "Não conheço esse comando. 🤔", mainMenuKeyboard())
	}
}

// handleText routes free text by the session step. Text sent while a
// keyboard is open re-prompts without advancing the flow.
func (r *Router) handleText(ctx context.Context, msg *tgbotapi.Message, key session.Key, sess *session.Session) {
	switch sess.Step {
	case session.StepAmount, session.StepManualDate, session.StepDescription,
		session.StepBudgetAmount, session.StepEditAmount, session.StepEditDescription:
		// Consumed inputs are removed to keep the chat tidy.
		r.deleteMessage(msg.Chat.ID, msg.MessageID)
	}

	switch sess.Step {
	case session.StepAmount:
		r.handleAmountInput(msg.Chat.ID, sess, msg.Text)
	case session.StepManualDate:
		r.handleManualDateInput(msg.Chat.ID, sess, msg.Text)
	case session.StepDescription:
		r.handleDescriptionInput(ctx, msg.Chat.ID, key, sess, msg.Text)
	case session.StepBudgetAmount:
		r.handleBudgetAmountInput(ctx, msg.Chat.ID, key, sess, msg.Text)
	case session.StepEditAmount:
		r.handleEditAmountInput(ctx, msg.Chat.ID, key, sess, msg.Text)
	case session.StepEditDescription:
		r.handleEditDescriptionInput(ctx, msg.Chat.ID, key, sess, msg.Text)
	case session.StepCategorySelect, session.StepSubcategory, session.StepDateSelect,
		session.StepBudgetCategory, session.StepEditField, session.StepEditCategory:
		r.send(msg.Chat.ID, "Use os botões acima para continuar. 😉", nil)
	case session.StepNone:
		r.send(msg.Chat.ID, "🤔 Não entendi. Use os botões abaixo. 👇", mainMenuKeyboard())
	default:
		// Unknown step means corrupted session state. Recover by
		// resetting instead of leaving the chat stuck.
		r.logger.Warn("corrupted session, resetting",
			log.FieldUserID, key.UserID, log.FieldStep, string(sess.Step))
		sess.Reset()
		r.send(msg.Chat.ID, "Algo se perdeu por aqui, vamos recomeçar. 🙂", mainMenuKeyboard())
	}
}

func (r *Router) handleCallbackQuery(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	r.answerCallback(cb.ID)

	if cb.From == nil || cb.Message == nil {
		return
	}
	if !r.cfg.Authorized(cb.From.ID) {
		r.logger.Warn("unauthorized callback", log.FieldUserID, cb.From.ID)
		return
	}

	decoded, err := DecodeCallback(cb.Data)
	if err != nil {
		r.logger.Warn("undecodable callback",
			log.FieldUserID, cb.From.ID, log.FieldCallback, cb.Data)
		return
	}

	key := session.Key{UserID: cb.From.ID, ChatID: cb.Message.Chat.ID}
	sess := r.sessions.Get(key)
	// Callbacks originate from a prompt message; keep editing it.
	sess.LastMessageID = cb.Message.MessageID
	chatID := cb.Message.Chat.ID

	r.logger.Debug("callback",
		log.FieldUserID, cb.From.ID, log.FieldCallback, cb.Data, log.FieldStep, string(sess.Step))

	switch c := decoded.(type) {
	case CbMainMenu:
		msgID := sess.LastMessageID
		sess.Reset()
		sess.LastMessageID = msgID
		r.promptEdit(sess, chatID, mainMenuText(cb.From.FirstName), mainMenuKeyboard())
	case CbAddTransaction:
		msgID := sess.LastMessageID
		sess.Reset()
		sess.LastMessageID = msgID
		r.startTransaction(ctx, chatID, sess, c.Kind)
	case CbCategory:
		r.handleCategory(ctx, chatID, sess, c.Name)
	case CbSubcategory:
		r.handleSubcategory(chatID, sess, c.Name)
	case CbSubcategorySkip:
		r.handleSubcategorySkip(chatID, sess, c.Parent)
	case CbDate:
		r.handleDateChoice(chatID, sess, c.Date)
	case CbDateManual:
		sess.Step = session.StepManualDate
		r.promptEdit(sess, chatID, "✏️ Digite a data no formato *DD/MM/AAAA*:", nil)
	case CbBalance:
		r.showBalance(ctx, chatID, sess)
	case CbStatement:
		r.showStatement(ctx, chatID, sess)
	case CbReports:
		r.promptEdit(sess, chatID, "📈 *Relatórios*\n\nEscolha um relatório:", reportsKeyboard())
	case CbReport:
		r.showReport(ctx, chatID, sess, c.Kind)
	case CbBudgets:
		r.promptEdit(sess, chatID, "🎯 *Orçamentos*\n\nO que você quer fazer?", budgetsKeyboard())
	case CbBudgetDefine:
		r.startBudgetDefine(ctx, chatID, sess)
	case CbBudgetCategory:
		r.handleBudgetCategory(chatID, sess, c.Name)
	case CbBudgetView:
		r.showBudgets(ctx, chatID, sess)
	case CbBudgetSpending:
		r.showBudgetSpending(ctx, chatID, sess, c.Category)
	case CbWipeConfirm:
		r.handleWipe(ctx, chatID, key, sess)
	case CbEditTx:
		r.showEditMenu(ctx, chatID, sess, c.ID)
	case CbEditField:
		r.handleEditField(ctx, chatID, sess, c.Field, c.ID)
	case CbEditCategory:
		r.handleEditCategorySelect(ctx, chatID, key, sess, c.Name)
	case CbDeleteTx:
		r.confirmDelete(ctx, chatID, sess, c.ID)
	case CbDeleteConfirm:
		r.handleDelete(ctx, chatID, key, sess, c.ID)
	}
}

func (r *Router) handleWipe(ctx context.Context, chatID int64, key session.Key, sess *session.Session) {
	if err := r.store.Wipe(ctx); err != nil {
		r.logger.Error("wipe", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui apagar os dados. Tente de novo.", mainMenuKeyboard())
		return
	}
	r.logger.Info("data wiped", log.FieldUserID, key.UserID)
	r.sessions.Clear(key)
	r.send(chatID, "🧹 Tudo limpo! Lançamentos e orçamentos foram apagados.", mainMenuKeyboard())
}

// send posts a new Markdown message and returns its id (0 on failure).
func (r *Router) send(chatID int64, text string, kb any) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if mk, ok := kb.(tgbotapi.InlineKeyboardMarkup); ok {
		msg.ReplyMarkup = mk
	}
	sent, err := r.api.Send(msg)
	if err != nil {
		r.logger.Error("send message", log.FieldChatID, chatID, log.FieldError, err)
		return 0
	}
	return sent.MessageID
}

// promptEdit updates the session's prompt message in place, falling
// back to a fresh message when there is nothing to edit.
func (r *Router) promptEdit(sess *session.Session, chatID int64, text string, kb any) {
	if sess.LastMessageID == 0 {
		sess.LastMessageID = r.send(chatID, text, kb)
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, sess.LastMessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if mk, ok := kb.(tgbotapi.InlineKeyboardMarkup); ok {
		edit.ReplyMarkup = &mk
	}
	if _, err := r.api.Send(edit); err != nil {
		r.logger.Debug("edit failed, sending new message",
			log.FieldChatID, chatID, log.FieldMessageID, sess.LastMessageID, log.FieldError, err)
		sess.LastMessageID = r.send(chatID, text, kb)
	}
}

func (r *Router) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := r.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		r.logger.Debug("delete message",
			log.FieldChatID, chatID, log.FieldMessageID, messageID, log.FieldError, err)
	}
}

func (r *Router) answerCallback(id string) {
	if _, err := r.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		r.logger.Debug("answer callback", log.FieldError, err)
	}
}
