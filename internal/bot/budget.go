package bot

import (
	"context"

	"grana/internal/core"
	"grana/internal/log"
	"grana/internal/session"
)

func (r *Router) startBudgetDefine(ctx context.Context, chatID int64, sess *session.Session) {
	cats, err := r.listCategories(ctx, core.Expense)
	if err != nil {
		r.logger.Error("list categories", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar as categorias. Tente de novo.", mainMenuKeyboard())
		return
	}
	sess.Step = session.StepBudgetCategory
	r.promptEdit(sess, chatID, "🎯 *Definir orçamento*\n\nPara qual categoria?", budgetCategoryKeyboard(cats))
}

func (r *Router) handleBudgetCategory(chatID int64, sess *session.Session, name string) {
	if sess.Step != session.StepBudgetCategory {
		r.staleKeyboard(sess, chatID)
		return
	}
	sess.BudgetCategory = name
	sess.Step = session.StepBudgetAmount
	r.promptEdit(sess, chatID, "💲 Qual o limite mensal para *"+name+"*? (ex: *500,00*)", nil)
}

func (r *Router) handleBudgetAmountInput(ctx context.Context, chatID int64, key session.Key, sess *session.Session, text string) {
	limit, err := core.ParseAmount(text)
	if err != nil {
		r.send(chatID, "🤔 Não entendi o valor. Tente algo como *500,00*.", nil)
		return
	}

	now := r.now()
	category := sess.BudgetCategory
	if err := r.store.UpsertBudget(ctx, category, limit, int(now.Month()), now.Year()); err != nil {
		r.logger.Error("upsert budget", log.FieldCategory, category, log.FieldError, err)
		r.send(chatID, "😕 Não consegui salvar o orçamento. Tente de novo.", mainMenuKeyboard())
		r.sessions.Clear(key)
		return
	}
	r.logger.Info("budget defined",
		log.FieldUserID, key.UserID, log.FieldCategory, category,
		log.FieldAmountCents, limit.Cents, log.FieldMonth, int(now.Month()), log.FieldYear, now.Year())

	r.deleteMessage(chatID, sess.LastMessageID)
	r.send(chatID,
		"✅ Orçamento de *"+category+"* definido em "+limit.BRL()+" para "+
			core.MonthNamePT(int(now.Month()))+".",
		mainMenuKeyboard())
	r.sessions.Clear(key)
}

func (r *Router) showBudgets(ctx context.Context, chatID int64, sess *session.Session) {
	now := r.now()
	budgets, err := r.store.ListBudgets(ctx, int(now.Month()), now.Year())
	if err != nil {
		r.logger.Error("list budgets", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar os orçamentos.", mainMenuKeyboard())
		return
	}

	statuses := make(map[string]core.BudgetStatus, len(budgets))
	order := make([]string, 0, len(budgets))
	for _, b := range budgets {
		st, err := r.store.BudgetStatus(ctx, b.Category, b.Month, b.Year)
		if err != nil {
			r.logger.Error("budget status", log.FieldCategory, b.Category, log.FieldError, err)
			continue
		}
		statuses[b.Category] = st
		order = append(order, b.Category)
	}

	r.promptEdit(sess, chatID, budgetListText(statuses, order), budgetListKeyboard(budgets))
}

func (r *Router) showBudgetSpending(ctx context.Context, chatID int64, sess *session.Session, category string) {
	now := r.now()
	st, err := r.store.BudgetStatus(ctx, category, int(now.Month()), now.Year())
	if err != nil {
		r.logger.Error("budget status", log.FieldCategory, category, log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar o orçamento.", mainMenuKeyboard())
		return
	}
	txs, err := r.store.ExpensesForCategory(ctx, category, int(now.Month()), now.Year())
	if err != nil {
		r.logger.Error("expenses for category", log.FieldCategory, category, log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar os gastos.", mainMenuKeyboard())
		return
	}
	r.promptEdit(sess, chatID, budgetSpendingText(category, st, txs), budgetsKeyboard())
}
