package zabbixtest_test

import (
	"net/http/httptest"
	"testing"

	"github.com/zscreen/zscreen/internal/screens"
	"github.com/zscreen/zscreen/internal/zabbix"
	"github.com/zscreen/zscreen/internal/zabbixtest"
)

func newTestClient(t *testing.T, srv *zabbixtest.Server) *zabbix.Client {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return zabbix.NewClient(ts.URL)
}

func TestLoginFlow(t *testing.T) {
	srv := zabbixtest.NewServer()
	srv.AddHostGroup("Linux servers")
	client := newTestClient(t, srv)

	if err := client.Login(zabbixtest.Username, "wrong"); err == nil {
		t.Fatal("Login() with bad password should fail")
	}

	if err := client.Login(zabbixtest.Username, zabbixtest.Password); err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}

	groups, err := client.HostGroupsByName([]string{"Linux servers"})
	if err != nil {
		t.Fatalf("HostGroupsByName() error = %v, want nil", err)
	}
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}

	if err := client.Logout(); err != nil {
		t.Fatalf("Logout() error = %v, want nil", err)
	}

	// The session is gone; further calls must be rejected
	client.SetToken("stale")
	if _, err := client.HostGroupsByName([]string{"Linux servers"}); err == nil {
		t.Error("calls with a stale token should fail")
	}
}

func TestRejectsUnknownToken(t *testing.T) {
	srv := zabbixtest.NewServer()
	client := newTestClient(t, srv)
	client.SetToken("bogus")

	_, err := client.ScreensByName("anything")
	if err == nil {
		t.Fatal("call with unknown token should fail")
	}

	if _, ok := err.(*zabbix.APIError); !ok {
		t.Errorf("error type = %T, want *zabbix.APIError", err)
	}
}

func TestVersionIsOpen(t *testing.T) {
	srv := zabbixtest.NewServer()
	srv.Version = "5.0.3"
	client := newTestClient(t, srv)

	// No login needed
	version, err := client.APIVersion()
	if err != nil {
		t.Fatalf("APIVersion() error = %v, want nil", err)
	}
	if version != "5.0.3" {
		t.Errorf("APIVersion() = %s, want 5.0.3", version)
	}
}

func TestScreenLifecycle(t *testing.T) {
	srv := zabbixtest.NewServer()
	client := newTestClient(t, srv)
	client.SetToken(srv.IssueToken())

	id, err := client.CreateScreen("Web Overview", 3, 4)
	if err != nil {
		t.Fatalf("CreateScreen() error = %v, want nil", err)
	}

	if _, err := client.CreateScreen("Web Overview", 3, 4); err == nil {
		t.Error("creating a screen with a taken name should fail")
	}

	if err := client.CreateScreenItem(zabbix.ScreenItemCreate{
		ScreenID:     id,
		ResourceType: zabbix.ResourceTypeGraph,
		ResourceID:   "612",
		Width:        500,
		Height:       100,
		Colspan:      1,
		Rowspan:      1,
	}); err != nil {
		t.Fatalf("CreateScreenItem() error = %v, want nil", err)
	}

	items, err := client.ScreenItems(id)
	if err != nil {
		t.Fatalf("ScreenItems() error = %v, want nil", err)
	}
	if len(items) != 1 || items[0].ResourceID != "612" {
		t.Fatalf("items = %+v, want one item for graph 612", items)
	}

	if err := client.UpdateScreen(id, 5, 6); err != nil {
		t.Fatalf("UpdateScreen() error = %v, want nil", err)
	}
	if got := srv.ScreenByName("Web Overview"); got == nil || got.Columns != 5 || got.Rows != 6 {
		t.Errorf("screen after update = %+v, want 5x6", got)
	}

	// Deleting the screen removes its items too
	if err := client.DeleteScreens([]string{id}); err != nil {
		t.Fatalf("DeleteScreens() error = %v, want nil", err)
	}
	if srv.ScreenByName("Web Overview") != nil {
		t.Error("screen should be gone after delete")
	}
	if got := srv.ItemCount(id); got != 0 {
		t.Errorf("items after screen delete = %d, want 0", got)
	}
}

// seedWebCluster registers a host group with two monitored hosts carrying a
// CPU and a memory graph each.
func seedWebCluster(srv *zabbixtest.Server) {
	gid := srv.AddHostGroup("Web cluster")
	for _, host := range []string{"web01", "web02"} {
		hid := srv.AddHost(host, gid)
		srv.AddGraph(hid, "CPU load")
		srv.AddGraph(hid, "Memory usage")
	}
}

func webOverviewSpec() screens.ScreenSpec {
	return screens.ScreenSpec{
		Name:       "Web Overview",
		HostGroups: []string{"Web cluster"},
		GraphNames: []string{"CPU load", "Memory usage"},
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	srv := zabbixtest.NewServer()
	seedWebCluster(srv)

	client := newTestClient(t, srv)
	if err := client.Login(zabbixtest.Username, zabbixtest.Password); err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}

	r := screens.NewReconciler(client, screens.Options{})

	// First apply creates the screen: 2 hosts x 2 graphs on a 2x2 grid
	summary, err := r.Apply([]screens.ScreenSpec{webOverviewSpec()})
	if err != nil {
		t.Fatalf("Apply() error = %v, want nil", err)
	}
	if len(summary.Created) != 1 || summary.Created[0] != "Web Overview" {
		t.Fatalf("Created = %v, want [Web Overview]", summary.Created)
	}

	screen := srv.ScreenByName("Web Overview")
	if screen == nil {
		t.Fatal("screen was not created on the server")
	}
	if screen.Columns != 2 || screen.Rows != 2 {
		t.Errorf("screen size = %dx%d, want 2x2", screen.Columns, screen.Rows)
	}
	if got := srv.ItemCount(screen.ID); got != 4 {
		t.Fatalf("items = %d, want 4", got)
	}

	// Second apply finds nothing to do
	creates := srv.CallCount("screenitem.create")
	summary, err = r.Apply([]screens.ScreenSpec{webOverviewSpec()})
	if err != nil {
		t.Fatalf("second Apply() error = %v, want nil", err)
	}
	if len(summary.Unchanged) != 1 {
		t.Errorf("Unchanged = %v, want [Web Overview]", summary.Unchanged)
	}
	if got := srv.CallCount("screenitem.create"); got != creates {
		t.Errorf("screenitem.create calls = %d, want %d (no new writes)", got, creates)
	}

	// Someone bolts an extra cell onto the screen; apply rebuilds it
	srv.AddItem(screen.ID, "999", 0, 2)
	summary, err = r.Apply([]screens.ScreenSpec{webOverviewSpec()})
	if err != nil {
		t.Fatalf("Apply() after drift error = %v, want nil", err)
	}
	if len(summary.Updated) != 1 {
		t.Errorf("Updated = %v, want [Web Overview]", summary.Updated)
	}
	if got := srv.ItemCount(screen.ID); got != 4 {
		t.Errorf("items after rebuild = %d, want 4", got)
	}
	if got := srv.CallCount("screen.update"); got != 1 {
		t.Errorf("screen.update calls = %d, want 1", got)
	}

	// state: absent tears the screen down
	absent := webOverviewSpec()
	absent.State = screens.StateAbsent
	summary, err = r.Apply([]screens.ScreenSpec{absent})
	if err != nil {
		t.Fatalf("Apply() absent error = %v, want nil", err)
	}
	if len(summary.Deleted) != 1 {
		t.Errorf("Deleted = %v, want [Web Overview]", summary.Deleted)
	}
	if srv.ScreenByName("Web Overview") != nil {
		t.Error("screen should be deleted")
	}
}

func TestReconcileDryRunLeavesServerUntouched(t *testing.T) {
	srv := zabbixtest.NewServer()
	seedWebCluster(srv)

	client := newTestClient(t, srv)
	if err := client.Login(zabbixtest.Username, zabbixtest.Password); err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}

	r := screens.NewReconciler(client, screens.Options{DryRun: true})
	summary, err := r.Apply([]screens.ScreenSpec{webOverviewSpec()})
	if err != nil {
		t.Fatalf("Apply() error = %v, want nil", err)
	}

	if !summary.DryRun {
		t.Error("summary should be marked dry-run")
	}
	if len(summary.Created) != 1 {
		t.Errorf("Created = %v, want [Web Overview]", summary.Created)
	}

	if srv.ScreenByName("Web Overview") != nil {
		t.Error("dry-run must not create screens")
	}
	for _, method := range []string{"screen.create", "screen.update", "screen.delete", "screenitem.create", "screenitem.delete"} {
		if got := srv.CallCount(method); got != 0 {
			t.Errorf("%s calls = %d, want 0", method, got)
		}
	}
}

func TestReconcileRefusesNewServers(t *testing.T) {
	srv := zabbixtest.NewServer()
	srv.Version = "6.0.0"
	seedWebCluster(srv)

	client := newTestClient(t, srv)
	if err := client.Login(zabbixtest.Username, zabbixtest.Password); err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}

	r := screens.NewReconciler(client, screens.Options{})
	_, err := r.Apply([]screens.ScreenSpec{webOverviewSpec()})

	if !screens.IsUnsupportedVersionError(err) {
		t.Fatalf("Apply() error = %v, want unsupported version error", err)
	}

	if got := srv.CallCount("screen.get"); got != 0 {
		t.Errorf("screen.get calls = %d, want 0 (gate fires before any lookup)", got)
	}
}
