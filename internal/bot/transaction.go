package bot

import (
	"context"
	"strconv"
	"time"

	"grana/internal/core"
	"grana/internal/log"
	"grana/internal/session"
)

func (r *Router) startTransaction(ctx context.Context, chatID int64, sess *session.Session, kind core.Kind) {
	cats, err := r.listCategories(ctx, kind)
	if err != nil {
		r.logger.Error("list categories", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar as categorias. Tente de novo.", mainMenuKeyboard())
		return
	}

	sess.Kind = kind
	sess.Step = session.StepCategorySelect

	title := "💸 *Nova despesa*"
	if kind == core.Income {
		title = "💰 *Nova receita*"
	}
	r.promptEdit(sess, chatID, title+"\n\nEscolha a categoria:", categoryKeyboard(cats))
}

func (r *Router) handleCategory(ctx context.Context, chatID int64, sess *session.Session, name string) {
	if sess.Step != session.StepCategorySelect || sess.Kind == "" {
		r.staleKeyboard(sess, chatID)
		return
	}
	sess.Category = name

	if sess.Kind == core.Expense && core.IsCardCategory(name) {
		subs, err := r.listCardSubcategories(ctx)
		if err != nil {
			r.logger.Error("list card subcategories", log.FieldError, err)
			subs = nil
		}
		if len(subs) > 0 {
			sess.ParentCategory = name
			sess.Step = session.StepSubcategory
			r.promptEdit(sess, chatID,
				"💳 Gasto no *"+name+"*.\n\nQuer detalhar com uma subcategoria?",
				subcategoryKeyboard(name, subs))
			return
		}
	}

	sess.Step = session.StepAmount
	r.promptEdit(sess, chatID, "💲 Quanto foi? Digite o valor (ex: *150,50*):", nil)
}

// handleSubcategory folds the chosen generic subcategory into the card
// the user actually picked, e.g. "Cartão NUBANK - Gasolina".
func (r *Router) handleSubcategory(chatID int64, sess *session.Session, name string) {
	if sess.Step != session.StepSubcategory || sess.ParentCategory == "" {
		r.staleKeyboard(sess, chatID)
		return
	}
	sess.Category = core.ComposeSubcategory(sess.ParentCategory, core.SubcategoryLabel(name))
	sess.Step = session.StepAmount
	r.promptEdit(sess, chatID, "💲 Quanto foi? Digite o valor (ex: *150,50*):", nil)
}

func (r *Router) handleSubcategorySkip(chatID int64, sess *session.Session, parent string) {
	if sess.Step != session.StepSubcategory {
		r.staleKeyboard(sess, chatID)
		return
	}
	sess.Category = parent
	sess.Step = session.StepAmount
	r.promptEdit(sess, chatID, "💲 Quanto foi? Digite o valor (ex: *150,50*):", nil)
}

func (r *Router) handleAmountInput(chatID int64, sess *session.Session, text string) {
	amount, err := core.ParseAmount(text)
	if err != nil {
		r.send(chatID, "🤔 Não entendi o valor. Tente algo como *150,50*.", nil)
		return
	}
	sess.Amount = amount
	sess.Step = session.StepDateSelect
	r.deleteMessage(chatID, sess.LastMessageID)
	sess.LastMessageID = r.send(chatID, "📅 Quando foi?", dateKeyboard(r.now()))
}

func (r *Router) handleDateChoice(chatID int64, sess *session.Session, date time.Time) {
	if sess.Step != session.StepDateSelect && sess.Step != session.StepManualDate {
		r.staleKeyboard(sess, chatID)
		return
	}
	sess.TxDate = date
	sess.EntryDate = r.now()
	sess.Step = session.StepDescription
	r.promptEdit(sess, chatID, "📝 Quer adicionar uma descrição? Envie o texto, ou *-* para pular.", nil)
}

func (r *Router) handleManualDateInput(chatID int64, sess *session.Session, text string) {
	date, err := core.ParseDateBR(text)
	if err != nil {
		r.send(chatID, "🤔 Data inválida. Use o formato *DD/MM/AAAA*.", nil)
		return
	}
	sess.TxDate = date
	sess.EntryDate = r.now()
	sess.Step = session.StepDescription
	r.deleteMessage(chatID, sess.LastMessageID)
	sess.LastMessageID = r.send(chatID, "📝 Quer adicionar uma descrição? Envie o texto, ou *-* para pular.", nil)
}

func (r *Router) handleDescriptionInput(ctx context.Context, chatID int64, key session.Key, sess *session.Session, text string) {
	description := text
	if description == "-" {
		description = ""
	}

	tx := core.Transaction{
		UserID:      strconv.FormatInt(key.UserID, 10),
		Kind:        sess.Kind,
		Category:    sess.Category,
		Amount:      sess.Amount,
		Description: description,
		Date:        sess.TxDate,
	}
	entryDate := sess.EntryDate

	id, err := r.store.AddTransaction(ctx, tx)
	if err != nil {
		r.logger.Error("add transaction",
			log.FieldUserID, key.UserID, log.FieldCategory, tx.Category, log.FieldError, err)
		r.send(chatID, "😕 Não consegui salvar o lançamento. Tente de novo.", mainMenuKeyboard())
		r.sessions.Clear(key)
		return
	}
	tx.ID = id
	r.logger.Info("transaction added",
		log.FieldUserID, key.UserID, log.FieldTxID, id,
		log.FieldCategory, tx.Category, log.FieldAmountCents, tx.Amount.Cents)

	r.deleteMessage(chatID, sess.LastMessageID)
	r.send(chatID, transactionSummary(tx, entryDate), mainMenuKeyboard())

	if tx.Kind == core.Expense {
		r.maybeBudgetAlert(ctx, chatID, tx)
	}
	r.sessions.Clear(key)
}

// maybeBudgetAlert checks the category budget for the month the
// transaction is accounted to and warns at 50/80/100 percent.
func (r *Router) maybeBudgetAlert(ctx context.Context, chatID int64, tx core.Transaction) {
	st, err := r.store.BudgetStatus(ctx, tx.Category, int(tx.Date.Month()), tx.Date.Year())
	if err != nil {
		r.logger.Error("budget status", log.FieldCategory, tx.Category, log.FieldError, err)
		return
	}
	if !st.Defined {
		return
	}
	if alert, ok := core.BudgetAlert(tx.Category, st.PercentUsed); ok {
		r.send(chatID, alert, nil)
	}
}

// staleKeyboard handles taps on keyboards left over from a finished or
// expired flow.
func (r *Router) staleKeyboard(sess *session.Session, chatID int64) {
	msgID := sess.LastMessageID
	sess.Reset()
	sess.LastMessageID = msgID
	r.promptEdit(sess, chatID, "Esse menu já expirou. Vamos do começo. 🙂", mainMenuKeyboard())
}
