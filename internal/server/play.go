package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/session"
)

// HandlePlay upgrades to a websocket and runs a session on it: every text
// message from the client is one line of input, and everything the session
// prints comes back as text messages.
func (s *Server) HandlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := s.log.With("session_id", id)
	log.Infow("websocket session opened", "remote", r.RemoteAddr)

	ctrl := session.New(s.engine, &wsReader{conn: conn}, &wsWriter{conn: conn}, log, session.Options{
		Archive: s.archive,
		Now:     s.now,
	})
	res, err := ctrl.Run(r.Context())
	if err != nil {
		if errors.Is(err, san.ErrContractViolation) {
			log.Errorw("session broke an invariant", "error", err)
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session aborted"))
		return
	}

	log.Infow("websocket session closed", "outcome", res.Outcome, "archive_id", res.ArchiveID)
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, res.Outcome.String()))
}

type wsReader struct {
	conn *websocket.Conn
}

func (r *wsReader) ReadLine() (string, error) {
	for {
		kind, data, err := r.conn.ReadMessage()
		if err != nil {
			// Any way the client goes away ends the game like end of input.
			return "", fmt.Errorf("%w: %v", io.EOF, err)
		}
		if kind == websocket.TextMessage {
			return string(data), nil
		}
	}
}

type wsWriter struct {
	conn *websocket.Conn
}

func (w *wsWriter) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
