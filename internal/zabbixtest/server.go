// Package zabbixtest provides an in-memory Zabbix API server for tests.
//
// The server speaks just enough of the pre-5.4 JSON-RPC surface to
// exercise the zabbix client and the screen reconciler end to end,
// including session handling and per-method call counting.
package zabbixtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/zscreen/zscreen/internal/zabbix"
)

// Credentials accepted by user.login.
const (
	Username = "Admin"
	Password = "zabbix"
)

// Server implements the Zabbix JSON-RPC subset the tool consumes, over
// in-memory state. Mount it with httptest:
//
//	srv := zabbixtest.NewServer()
//	ts := httptest.NewServer(srv)
//	defer ts.Close()
//	client := zabbix.NewClient(ts.URL)
//
// Result structs from the zabbix package marshal numeric fields back to
// strings, so responses match the real wire format.
type Server struct {
	mu sync.Mutex

	// Version is what apiinfo.version reports.
	Version string

	Groups  []zabbix.HostGroup
	Hosts   []zabbix.Host
	Graphs  map[string][]zabbix.Graph
	Screens []zabbix.Screen
	Items   map[string][]zabbix.ScreenItem

	// Calls counts requests per API method.
	Calls map[string]int

	tokens map[string]bool
	nextID int
}

// NewServer returns an empty server reporting a screen-capable version.
func NewServer() *Server {
	return &Server{
		Version: "5.2.4",
		Graphs:  make(map[string][]zabbix.Graph),
		Items:   make(map[string][]zabbix.ScreenItem),
		Calls:   make(map[string]int),
		tokens:  make(map[string]bool),
		nextID:  1000,
	}
}

func (s *Server) id() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

// AddHostGroup registers a host group and returns its id.
func (s *Server) AddHostGroup(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.Groups = append(s.Groups, zabbix.HostGroup{ID: id, Name: name})
	return id
}

// AddHost registers a monitored host in the given groups and returns its id.
func (s *Server) AddHost(name string, groupIDs ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	host := zabbix.Host{ID: id, Name: name}
	for _, gid := range groupIDs {
		host.Groups = append(host.Groups, zabbix.HostGroup{ID: gid})
	}
	s.Hosts = append(s.Hosts, host)
	return id
}

// AddGraph registers a graph on a host and returns its id.
func (s *Server) AddGraph(hostID, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.Graphs[hostID] = append(s.Graphs[hostID], zabbix.Graph{ID: id, Name: name})
	return id
}

// AddScreen registers a screen and returns its id.
func (s *Server) AddScreen(name string, columns, rows int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.Screens = append(s.Screens, zabbix.Screen{ID: id, Name: name, Columns: columns, Rows: rows})
	return id
}

// AddItem attaches a graph cell to a screen and returns the item id.
func (s *Server) AddItem(screenID, resourceID string, x, y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.Items[screenID] = append(s.Items[screenID], zabbix.ScreenItem{
		ID:         id,
		ScreenID:   screenID,
		ResourceID: resourceID,
		X:          x,
		Y:          y,
	})
	return id
}

// IssueToken registers and returns a valid session token, standing in for
// a session established out of band.
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "token-" + s.id()
	s.tokens[token] = true
	return token
}

// ScreenByName returns the stored screen with the exact name, for
// assertions.
func (s *Server) ScreenByName(name string) *zabbix.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Screens {
		if s.Screens[i].Name == name {
			return &s.Screens[i]
		}
	}
	return nil
}

// CallCount returns how many times an API method was requested.
func (s *Server) CallCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[method]
}

// ItemCount returns how many items a screen currently holds.
func (s *Server) ItemCount(screenID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Items[screenID])
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
	Auth    *string         `json:"auth"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type getParams struct {
	Filter         map[string][]string `json:"filter"`
	Search         map[string]string   `json:"search"`
	GroupIDs       []string            `json:"groupids"`
	HostIDs        []string            `json:"hostids"`
	ScreenIDs      []string            `json:"screenids"`
	MonitoredHosts int                 `json:"monitored_hosts"`
}

// ServeHTTP dispatches one JSON-RPC request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	s.Calls[req.Method]++

	// The two session-free methods reject an auth field; everything else
	// requires a valid token.
	switch req.Method {
	case "apiinfo.version", "user.login":
		if req.Auth != nil {
			s.writeError(w, req.ID, -32602, "Invalid params.",
				fmt.Sprintf("The %q method must be called without the \"auth\" parameter.", req.Method))
			return
		}
	default:
		if req.Auth == nil || !s.tokens[*req.Auth] {
			s.writeError(w, req.ID, -32602, "Invalid params.", "Not authorised.")
			return
		}
	}

	switch req.Method {
	case "apiinfo.version":
		s.writeResult(w, req.ID, s.Version)
	case "user.login":
		s.login(w, req)
	case "user.logout":
		delete(s.tokens, *req.Auth)
		s.writeResult(w, req.ID, true)
	case "hostgroup.get":
		s.hostgroupGet(w, req)
	case "host.get":
		s.hostGet(w, req)
	case "graph.get":
		s.graphGet(w, req)
	case "screen.get":
		s.screenGet(w, req)
	case "screen.create":
		s.screenCreate(w, req)
	case "screen.update":
		s.screenUpdate(w, req)
	case "screen.delete":
		s.screenDelete(w, req)
	case "screenitem.get":
		s.screenitemGet(w, req)
	case "screenitem.create":
		s.screenitemCreate(w, req)
	case "screenitem.delete":
		s.screenitemDelete(w, req)
	default:
		s.writeError(w, req.ID, -32601, "Method not found.", "")
	}
}

func (s *Server) login(w http.ResponseWriter, req rpcRequest) {
	var params struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	if params.User != Username || params.Password != Password {
		s.writeError(w, req.ID, -32602, "Invalid params.", "Login name or password is incorrect.")
		return
	}
	token := "session-" + s.id()
	s.tokens[token] = true
	s.writeResult(w, req.ID, token)
}

func (s *Server) hostgroupGet(w http.ResponseWriter, req rpcRequest) {
	var params getParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	names := params.Filter["name"]
	out := []zabbix.HostGroup{}
	for _, g := range s.Groups {
		if names == nil || containsString(names, g.Name) {
			out = append(out, g)
		}
	}
	s.writeResult(w, req.ID, out)
}

func (s *Server) hostGet(w http.ResponseWriter, req rpcRequest) {
	var params getParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	out := []zabbix.Host{}
	for _, h := range s.Hosts {
		for _, g := range h.Groups {
			if containsString(params.GroupIDs, g.ID) {
				out = append(out, h)
				break
			}
		}
	}
	s.writeResult(w, req.ID, out)
}

func (s *Server) graphGet(w http.ResponseWriter, req rpcRequest) {
	var params getParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	needle := strings.ToLower(params.Search["name"])
	out := []zabbix.Graph{}
	for _, hostID := range params.HostIDs {
		for _, g := range s.Graphs[hostID] {
			if strings.Contains(strings.ToLower(g.Name), needle) {
				out = append(out, g)
			}
		}
	}
	s.writeResult(w, req.ID, out)
}

func (s *Server) screenGet(w http.ResponseWriter, req rpcRequest) {
	var params getParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	needle := params.Search["name"]
	out := []zabbix.Screen{}
	for _, sc := range s.Screens {
		if strings.Contains(sc.Name, needle) {
			out = append(out, sc)
		}
	}
	s.writeResult(w, req.ID, out)
}

func (s *Server) screenCreate(w http.ResponseWriter, req rpcRequest) {
	var params struct {
		Name    string `json:"name"`
		Columns int    `json:"hsize"`
		Rows    int    `json:"vsize"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	for _, sc := range s.Screens {
		if sc.Name == params.Name {
			s.writeError(w, req.ID, -32602, "Invalid params.",
				fmt.Sprintf("Screen %q already exists.", params.Name))
			return
		}
	}
	id := s.id()
	s.Screens = append(s.Screens, zabbix.Screen{
		ID: id, Name: params.Name, Columns: params.Columns, Rows: params.Rows,
	})
	s.writeResult(w, req.ID, map[string][]string{"screenids": {id}})
}

func (s *Server) screenUpdate(w http.ResponseWriter, req rpcRequest) {
	var params struct {
		ScreenID string `json:"screenid"`
		Columns  int    `json:"hsize"`
		Rows     int    `json:"vsize"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	for i := range s.Screens {
		if s.Screens[i].ID == params.ScreenID {
			s.Screens[i].Columns = params.Columns
			s.Screens[i].Rows = params.Rows
			s.writeResult(w, req.ID, map[string][]string{"screenids": {params.ScreenID}})
			return
		}
	}
	s.writeError(w, req.ID, -32602, "Invalid params.", "No permissions to referred object or it does not exist!")
}

func (s *Server) screenDelete(w http.ResponseWriter, req rpcRequest) {
	var ids []string
	if err := json.Unmarshal(req.Params, &ids); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	var kept []zabbix.Screen
	deleted := make([]string, 0, len(ids))
	for _, sc := range s.Screens {
		if containsString(ids, sc.ID) {
			delete(s.Items, sc.ID)
			deleted = append(deleted, sc.ID)
			continue
		}
		kept = append(kept, sc)
	}
	if len(deleted) != len(ids) {
		s.writeError(w, req.ID, -32602, "Invalid params.", "No permissions to referred object or it does not exist!")
		return
	}
	s.Screens = kept
	s.writeResult(w, req.ID, map[string][]string{"screenids": deleted})
}

func (s *Server) screenitemGet(w http.ResponseWriter, req rpcRequest) {
	var params getParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	out := []zabbix.ScreenItem{}
	for _, screenID := range params.ScreenIDs {
		out = append(out, s.Items[screenID]...)
	}
	s.writeResult(w, req.ID, out)
}

func (s *Server) screenitemCreate(w http.ResponseWriter, req rpcRequest) {
	var params zabbix.ScreenItemCreate
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	if s.screenByID(params.ScreenID) == nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", "No permissions to referred object or it does not exist!")
		return
	}
	id := s.id()
	s.Items[params.ScreenID] = append(s.Items[params.ScreenID], zabbix.ScreenItem{
		ID:           id,
		ScreenID:     params.ScreenID,
		ResourceType: params.ResourceType,
		ResourceID:   params.ResourceID,
		X:            params.X,
		Y:            params.Y,
		Width:        params.Width,
		Height:       params.Height,
	})
	s.writeResult(w, req.ID, map[string][]string{"screenitemids": {id}})
}

func (s *Server) screenitemDelete(w http.ResponseWriter, req rpcRequest) {
	var ids []string
	if err := json.Unmarshal(req.Params, &ids); err != nil {
		s.writeError(w, req.ID, -32602, "Invalid params.", err.Error())
		return
	}
	deleted := make([]string, 0, len(ids))
	for screenID, items := range s.Items {
		var kept []zabbix.ScreenItem
		for _, it := range items {
			if containsString(ids, it.ID) {
				deleted = append(deleted, it.ID)
				continue
			}
			kept = append(kept, it)
		}
		s.Items[screenID] = kept
	}
	if len(deleted) != len(ids) {
		s.writeError(w, req.ID, -32602, "Invalid params.", "No permissions to referred object or it does not exist!")
		return
	}
	s.writeResult(w, req.ID, map[string][]string{"screenitemids": deleted})
}

func (s *Server) screenByID(id string) *zabbix.Screen {
	for i := range s.Screens {
		if s.Screens[i].ID == id {
			return &s.Screens[i]
		}
	}
	return nil
}

func (s *Server) writeResult(w http.ResponseWriter, id json.RawMessage, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"result":  result,
		"id":      id,
	})
}

func (s *Server) writeError(w http.ResponseWriter, id json.RawMessage, code int, message, data string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"error":   rpcError{Code: code, Message: message, Data: data},
		"id":      id,
	})
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
