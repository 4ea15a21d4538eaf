package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grana/internal/core"
	"grana/internal/log"
	"grana/internal/session"
)

const (
	statementLimit = 7

	// Telegram caps messages at 4096 chars; leave headroom for entities.
	maxMessageLen = 3500
)

func (r *Router) sendDocument(chatID int64, name, contents string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: []byte(contents)})
	if _, err := r.api.Send(doc); err != nil {
		r.logger.Error("send document", log.FieldChatID, chatID, log.FieldError, err)
	}
}

func (r *Router) showBalance(ctx context.Context, chatID int64, sess *session.Session) {
	now := r.now()
	totals, err := r.store.MonthlyTotals(ctx, int(now.Month()), now.Year())
	if err != nil {
		r.logger.Error("monthly totals", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui calcular o saldo.", mainMenuKeyboard())
		return
	}
	r.promptEdit(sess, chatID, balanceText(now.Month(), now.Year(), totals), mainMenuKeyboard())
}

func (r *Router) showStatement(ctx context.Context, chatID int64, sess *session.Session) {
	txs, err := r.store.RecentTransactions(ctx, statementLimit)
	if err != nil {
		r.logger.Error("recent transactions", log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar o extrato.", mainMenuKeyboard())
		return
	}
	r.promptEdit(sess, chatID, statementText(txs), statementKeyboard(txs))
}

func (r *Router) showReport(ctx context.Context, chatID int64, sess *session.Session, kind ReportKind) {
	now := r.now()
	month, year := now.Month(), now.Year()

	switch kind {
	case ReportChart:
		totals, err := r.store.MonthlyTotals(ctx, int(month), year)
		if err != nil {
			r.logger.Error("monthly totals", log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui montar o relatório.", mainMenuKeyboard())
			return
		}
		r.promptEdit(sess, chatID, monthlyReportText(month, year, totals), reportsKeyboard())

	case ReportDetailed:
		txs, err := r.store.MonthlyEntries(ctx, int(month), year)
		if err != nil {
			r.logger.Error("monthly entries", log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui montar o relatório.", mainMenuKeyboard())
			return
		}
		text := detailedReportText(month, year, txs)
		if len(text) > maxMessageLen {
			r.sendDocument(chatID,
				fmt.Sprintf("relatorio-%04d-%02d.txt", year, int(month)),
				strings.ReplaceAll(text, "*", ""))
			r.promptEdit(sess, chatID, "📋 O relatório ficou grande, enviei como arquivo. 👆", reportsKeyboard())
			return
		}
		r.promptEdit(sess, chatID, text, reportsKeyboard())

	case ReportComparative:
		current, err := r.store.MonthlyTotals(ctx, int(month), year)
		if err != nil {
			r.logger.Error("monthly totals", log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui montar o relatório.", mainMenuKeyboard())
			return
		}
		prevYear, prevMonth := core.PreviousMonth(year, int(month))
		previous, err := r.store.MonthlyTotals(ctx, prevMonth, prevYear)
		if err != nil {
			r.logger.Error("monthly totals",
				log.FieldMonth, prevMonth, log.FieldYear, prevYear, log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui montar o relatório.", mainMenuKeyboard())
			return
		}
		cmp := core.Compare(current, previous)
		r.promptEdit(sess, chatID, comparativeReportText(month, year, cmp), reportsKeyboard())
	}
}
