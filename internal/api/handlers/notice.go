package handlers

import (
	"net/http"

	"github.com/vendrom/calendar-backend/internal/notice"
)

// GetNotice returns the pending notice, or 204 when the mailbox is empty.
func GetNotice(mailbox *notice.Mailbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, ok := mailbox.Current()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

// DismissNotice clears the pending notice.
func DismissNotice(mailbox *notice.Mailbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mailbox.Dismiss()
		w.WriteHeader(http.StatusNoContent)
	}
}
