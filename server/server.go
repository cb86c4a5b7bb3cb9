// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package server serves a live preview of a rendered document: the page, the
// current html, and a websocket that pushes the html after every flush.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	HttpReadTimeout    = 5 * time.Second
	HttpWriteTimeout   = 21 * time.Second
	HttpMaxHeaderBytes = 60000
	ShutdownTimeout    = 2 * time.Second
)

const wsWriteWaitTimeout = 10 * time.Second
const wsPingPeriodTickTime = 10 * time.Second
const wsOutputBufferSize = 16

const ContentTypeHeaderKey = "Content-Type"
const ContentTypeHtml = "text/html; charset=utf-8"
const CacheControlHeaderKey = "Cache-Control"
const CacheControlHeaderNoCache = "no-cache"

var WebSocketUpgrader = websocket.Upgrader{
	ReadBufferSize:   4 * 1024,
	WriteBufferSize:  32 * 1024,
	HandshakeTimeout: 1 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

type HtmlMessage struct {
	Type string `json:"type"`
	Html string `json:"html"`
}

type Server struct {
	title   string
	lock    sync.Mutex
	html    string
	clients map[string]chan []byte
	router  *mux.Router
}

func MakeServer(title string) *Server {
	s := &Server{
		title:   title,
		clients: make(map[string]chan []byte),
	}
	gr := mux.NewRouter()
	gr.HandleFunc("/", webFnWrap(s.handlePage)).Methods(http.MethodGet)
	gr.HandleFunc("/api/html", webFnWrap(s.handleHtml)).Methods(http.MethodGet)
	gr.HandleFunc("/ws", s.handleWs)
	s.router = gr
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) CurrentHtml() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.html
}

// Publish stores html as the current document and pushes it to every connected
// websocket.  Slow clients miss updates instead of blocking the caller.
func (s *Server) Publish(html string) {
	barr, err := json.Marshal(HtmlMessage{Type: "html", Html: html})
	if err != nil {
		log.Printf("cannot marshal html message: %v\n", err)
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.html = html
	for connId, ch := range s.clients {
		select {
		case ch <- barr:
		default:
			log.Printf("websocket %s is behind, dropping update\n", connId)
		}
	}
}

func (s *Server) register(connId string) (chan []byte, []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ch := make(chan []byte, wsOutputBufferSize)
	s.clients[connId] = ch
	initial, _ := json.Marshal(HtmlMessage{Type: "html", Html: s.html})
	return ch, initial
}

func (s *Server) unregister(connId string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.clients, connId)
}

func (s *Server) NumClients() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

// Serve blocks until ctx is done (then shuts the server down) or the server fails.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        s.router,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}

func MakeTCPListener(addr string) (net.Listener, error) {
	rtn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error creating listener at %v: %w", addr, err)
	}
	log.Printf("server listening on %s\n", rtn.Addr())
	return rtn, nil
}

type webFnType = func(http.ResponseWriter, *http.Request)

func webFnWrap(fn webFnType) webFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recErr := recover()
			if recErr == nil {
				return
			}
			log.Printf("panic: %v\n", recErr)
			debug.PrintStack()
			http.Error(w, fmt.Sprintf("panic: %v", recErr), http.StatusInternalServerError)
		}()
		w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		fn(w, r)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="root">{{.Html}}</div>
<script>
(function () {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (ev) {
        var msg = JSON.parse(ev.data);
        if (msg.type === "html") {
            document.getElementById("root").innerHTML = msg.html;
        }
    };
})();
</script>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeHtml)
	err := pageTemplate.Execute(w, map[string]any{
		"Title": s.title,
		"Html":  template.HTML(s.CurrentHtml()),
	})
	if err != nil {
		log.Printf("error rendering page: %v\n", err)
	}
}

func (s *Server) handleHtml(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeHtml)
	w.Write([]byte(s.CurrentHtml()))
}

func (s *Server) handleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := WebSocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an http error
		log.Printf("websocket upgrade failed: %v\n", err)
		return
	}
	defer conn.Close()
	connId := uuid.New().String()
	outputCh, initial := s.register(connId)
	defer s.unregister(connId)
	closeCh := make(chan struct{})
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		readLoop(conn, closeCh)
	}()
	go func() {
		defer wg.Done()
		writeLoop(conn, initial, outputCh, closeCh)
	}()
	wg.Wait()
}

// the page never sends anything, reading only detects the close
func readLoop(conn *websocket.Conn, closeCh chan struct{}) {
	defer close(closeCh)
	conn.SetReadLimit(4 * 1024)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeLoop(conn *websocket.Conn, initial []byte, outputCh chan []byte, closeCh chan struct{}) {
	ticker := time.NewTicker(wsPingPeriodTickTime)
	defer ticker.Stop()
	defer conn.Close()
	write := func(msgType int, barr []byte) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWaitTimeout))
		return conn.WriteMessage(msgType, barr)
	}
	if err := write(websocket.TextMessage, initial); err != nil {
		log.Printf("websocket write error: %v\n", err)
		return
	}
	for {
		select {
		case barr := <-outputCh:
			if err := write(websocket.TextMessage, barr); err != nil {
				log.Printf("websocket write error: %v\n", err)
				return
			}
		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				log.Printf("websocket ping error: %v\n", err)
				return
			}
		case <-closeCh:
			return
		}
	}
}
