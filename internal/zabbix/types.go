package zabbix

// Result objects for the API subset this tool consumes. Zabbix returns
// every scalar as a JSON string, so numeric fields carry ",string" tags.

// HostGroup is a host group as returned by hostgroup.get.
type HostGroup struct {
	ID   string `json:"groupid"`
	Name string `json:"name"`
}

// Host is a monitored host with its group memberships attached
// (host.get with selectGroups).
type Host struct {
	ID     string      `json:"hostid"`
	Name   string      `json:"name"`
	Groups []HostGroup `json:"groups"`
}

// Graph is a graph as returned by graph.get.
type Graph struct {
	ID   string `json:"graphid"`
	Name string `json:"name"`
}

// Screen is a screen as returned by screen.get. Columns and Rows map to
// the API's hsize and vsize.
type Screen struct {
	ID      string `json:"screenid"`
	Name    string `json:"name"`
	Columns int    `json:"hsize,string"`
	Rows    int    `json:"vsize,string"`
}

// ScreenItem is one cell attached to a screen, as returned by
// screenitem.get.
type ScreenItem struct {
	ID           string `json:"screenitemid"`
	ScreenID     string `json:"screenid"`
	ResourceType int    `json:"resourcetype,string"`
	ResourceID   string `json:"resourceid"`
	X            int    `json:"x,string"`
	Y            int    `json:"y,string"`
	Width        int    `json:"width,string"`
	Height       int    `json:"height,string"`
}

// ResourceTypeGraph is the screen item resource type for a graph cell.
const ResourceTypeGraph = 0

// ScreenItemCreate is the screenitem.create payload for one cell. The
// trailing zero-valued fields are meaningful to the API and are sent
// explicitly.
type ScreenItemCreate struct {
	ScreenID     string `json:"screenid"`
	ResourceType int    `json:"resourcetype"`
	ResourceID   string `json:"resourceid"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Colspan      int    `json:"colspan"`
	Rowspan      int    `json:"rowspan"`
	Elements     int    `json:"elements"`
	VAlign       int    `json:"valign"`
	HAlign       int    `json:"halign"`
	Style        int    `json:"style"`
	Dynamic      int    `json:"dynamic"`
	SortTriggers int    `json:"sort_triggers"`
}

// getParams covers the parameter shapes of the *.get methods in use.
type getParams struct {
	Output         interface{}         `json:"output"`
	Filter         map[string][]string `json:"filter,omitempty"`
	Search         map[string]string   `json:"search,omitempty"`
	GroupIDs       []string            `json:"groupids,omitempty"`
	HostIDs        []string            `json:"hostids,omitempty"`
	ScreenIDs      []string            `json:"screenids,omitempty"`
	SelectGroups   string              `json:"selectGroups,omitempty"`
	MonitoredHosts int                 `json:"monitored_hosts,omitempty"`
}

type screenCreateParams struct {
	Name    string `json:"name"`
	Columns int    `json:"hsize"`
	Rows    int    `json:"vsize"`
}

type screenUpdateParams struct {
	ScreenID string `json:"screenid"`
	Columns  int    `json:"hsize"`
	Rows     int    `json:"vsize"`
}

type screenIDsResult struct {
	ScreenIDs []string `json:"screenids"`
}

type loginParams struct {
	User     string `json:"user"`
	Password string `json:"password"`
}
