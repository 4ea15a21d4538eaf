package bot

import (
	"context"
	"errors"

	"grana/internal/core"
	"grana/internal/log"
	"grana/internal/session"
)

func (r *Router) showEditMenu(ctx context.Context, chatID int64, sess *session.Session, id int64) {
	tx, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			r.promptEdit(sess, chatID, "🤔 Esse lançamento não existe mais.", mainMenuKeyboard())
			return
		}
		r.logger.Error("get transaction", log.FieldTxID, id, log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar o lançamento.", mainMenuKeyboard())
		return
	}
	sess.EditTxID = id
	sess.Step = session.StepEditField
	r.promptEdit(sess, chatID, editMenuText(tx), editFieldKeyboard(id))
}

func (r *Router) handleEditField(ctx context.Context, chatID int64, sess *session.Session, field core.EditableField, id int64) {
	sess.EditTxID = id

	switch field {
	case core.FieldAmount:
		sess.Step = session.StepEditAmount
		r.promptEdit(sess, chatID, "💲 Digite o novo valor (ex: *150,50*):", nil)
	case core.FieldDescription:
		sess.Step = session.StepEditDescription
		r.promptEdit(sess, chatID, "📝 Digite a nova descrição, ou *-* para remover:", nil)
	case core.FieldCategory:
		tx, err := r.store.GetTransaction(ctx, id)
		if err != nil {
			r.logger.Error("get transaction", log.FieldTxID, id, log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui carregar o lançamento.", mainMenuKeyboard())
			return
		}
		cats, err := r.listCategories(ctx, tx.Kind)
		if err != nil {
			r.logger.Error("list categories", log.FieldError, err)
			r.promptEdit(sess, chatID, "😕 Não consegui carregar as categorias.", mainMenuKeyboard())
			return
		}
		sess.Step = session.StepEditCategory
		r.promptEdit(sess, chatID, "🏷 Escolha a nova categoria:", editCategoryKeyboard(cats))
	}
}

func (r *Router) handleEditAmountInput(ctx context.Context, chatID int64, key session.Key, sess *session.Session, text string) {
	amount, err := core.ParseAmount(text)
	if err != nil {
		r.send(chatID, "🤔 Não entendi o valor. Tente algo como *150,50*.", nil)
		return
	}
	r.applyEdit(ctx, chatID, key, sess, core.FieldAmount, amount)
}

func (r *Router) handleEditDescriptionInput(ctx context.Context, chatID int64, key session.Key, sess *session.Session, text string) {
	description := text
	if description == "-" {
		description = ""
	}
	r.applyEdit(ctx, chatID, key, sess, core.FieldDescription, description)
}

func (r *Router) handleEditCategorySelect(ctx context.Context, chatID int64, key session.Key, sess *session.Session, name string) {
	if sess.Step != session.StepEditCategory || sess.EditTxID == 0 {
		r.staleKeyboard(sess, chatID)
		return
	}
	r.applyEdit(ctx, chatID, key, sess, core.FieldCategory, name)
}

// applyEdit writes the single-field update and reads the transaction
// back so the confirmation reflects what was actually stored.
func (r *Router) applyEdit(ctx context.Context, chatID int64, key session.Key, sess *session.Session, field core.EditableField, value any) {
	id := sess.EditTxID
	ok, err := r.store.UpdateTransactionField(ctx, id, field, value)
	if err != nil {
		r.logger.Error("update transaction field", log.FieldTxID, id, log.FieldError, err)
		r.send(chatID, "😕 Não consegui atualizar o lançamento.", mainMenuKeyboard())
		r.sessions.Clear(key)
		return
	}
	if !ok {
		r.send(chatID, "🤔 Esse lançamento não existe mais.", mainMenuKeyboard())
		r.sessions.Clear(key)
		return
	}
	r.logger.Info("transaction updated",
		log.FieldUserID, key.UserID, log.FieldTxID, id, log.FieldOperation, string(field))

	tx, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		r.logger.Error("get transaction", log.FieldTxID, id, log.FieldError, err)
		r.send(chatID, "✅ Lançamento atualizado!", mainMenuKeyboard())
		r.sessions.Clear(key)
		return
	}
	r.deleteMessage(chatID, sess.LastMessageID)
	r.send(chatID, "✅ *Lançamento atualizado!*\n\n"+editMenuText(tx), editFieldKeyboard(id))
	r.sessions.Clear(key)
}

func (r *Router) confirmDelete(ctx context.Context, chatID int64, sess *session.Session, id int64) {
	tx, err := r.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			r.promptEdit(sess, chatID, "🤔 Esse lançamento não existe mais.", mainMenuKeyboard())
			return
		}
		r.logger.Error("get transaction", log.FieldTxID, id, log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui carregar o lançamento.", mainMenuKeyboard())
		return
	}
	r.promptEdit(sess, chatID,
		"🗑 *Excluir lançamento #"+formatID(id)+"?*\n\n"+
			"🏷 "+tx.Category+" - "+tx.Amount.BRL()+" em "+core.FormatDateBR(tx.Date),
		deleteConfirmKeyboard(id))
}

func (r *Router) handleDelete(ctx context.Context, chatID int64, key session.Key, sess *session.Session, id int64) {
	ok, err := r.store.DeleteTransaction(ctx, id)
	if err != nil {
		r.logger.Error("delete transaction", log.FieldTxID, id, log.FieldError, err)
		r.promptEdit(sess, chatID, "😕 Não consegui excluir o lançamento.", mainMenuKeyboard())
		return
	}
	if !ok {
		r.promptEdit(sess, chatID, "🤔 Esse lançamento já tinha sido excluído.", mainMenuKeyboard())
		return
	}
	r.logger.Info("transaction deleted", log.FieldUserID, key.UserID, log.FieldTxID, id)
	r.sessions.Clear(key)
	r.promptEdit(sess, chatID, "🗑 Lançamento #"+formatID(id)+" excluído.", mainMenuKeyboard())
}
