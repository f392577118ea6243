package screens

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/zscreen/zscreen/internal/logging"
	"github.com/zscreen/zscreen/internal/zabbix"
)

// Action describes what Reconcile did, or would do in a dry run.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionUnchanged Action = "unchanged"
)

// Outcome is the result of reconciling a single screen.
type Outcome struct {
	Name   string
	Action Action
}

// Options tune a reconciliation batch.
type Options struct {
	// DryRun performs every read but no write, reporting what would
	// change.
	DryRun bool

	// KeepGoing continues with the remaining screens after a failure
	// instead of stopping at the first error.
	KeepGoing bool
}

// Summary aggregates the outcomes of a batch, in apply order per action.
type Summary struct {
	Created   []string
	Updated   []string
	Deleted   []string
	Unchanged []string
	DryRun    bool
}

// Changed reports whether any screen was (or would be) written.
func (s Summary) Changed() bool {
	return len(s.Created)+len(s.Updated)+len(s.Deleted) > 0
}

// Empty reports whether the batch produced no outcomes at all.
func (s Summary) Empty() bool {
	return len(s.Created)+len(s.Updated)+len(s.Deleted)+len(s.Unchanged) == 0
}

func (s *Summary) add(o Outcome) {
	switch o.Action {
	case ActionCreated:
		s.Created = append(s.Created, o.Name)
	case ActionUpdated:
		s.Updated = append(s.Updated, o.Name)
	case ActionDeleted:
		s.Deleted = append(s.Deleted, o.Name)
	case ActionUnchanged:
		s.Unchanged = append(s.Unchanged, o.Name)
	}
}

// Reconciler drives screens toward their declared state, strictly one
// screen and one API call at a time. Nothing is cached between screens;
// every decision is made against freshly read state.
type Reconciler struct {
	api  API
	opts Options
}

// NewReconciler creates a reconciler over the given API.
func NewReconciler(api API, opts Options) *Reconciler {
	return &Reconciler{api: api, opts: opts}
}

// Apply reconciles every screen in order. The server version is gated once
// up front: servers at or past the screen API removal fail before any
// screen is touched. By default the first error stops the batch; with
// KeepGoing the remaining screens are still applied and the errors come
// back aggregated. Either way, already-applied screens stand. There is no
// rollback.
func (r *Reconciler) Apply(specs []ScreenSpec) (Summary, error) {
	summary := Summary{DryRun: r.opts.DryRun}

	version, err := r.api.APIVersion()
	if err != nil {
		return summary, &ScreenError{
			Kind:    ErrKindRemote,
			Op:      "apiinfo.version",
			Message: "could not determine server version",
			Err:     err,
		}
	}
	if err := CheckSupport(version); err != nil {
		return summary, err
	}

	var errs error
	for _, spec := range specs {
		outcome, err := r.Reconcile(spec)
		if err != nil {
			if !r.opts.KeepGoing {
				return summary, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		summary.add(outcome)
	}
	return summary, errs
}

// Reconcile brings a single screen to its declared state.
func (r *Reconciler) Reconcile(spec ScreenSpec) (Outcome, error) {
	spec.Normalize()
	if errs := spec.Validate(); len(errs) > 0 {
		return Outcome{Name: spec.Name}, multierr.Combine(errs...)
	}
	if spec.State == StateAbsent {
		return r.ensureAbsent(spec)
	}
	return r.ensurePresent(spec)
}

// ensureAbsent deletes the screen if it exists. A missing screen is already
// the desired state, not an error.
func (r *Reconciler) ensureAbsent(spec ScreenSpec) (Outcome, error) {
	existing, err := r.findScreen(spec.Name)
	if err != nil {
		return Outcome{}, err
	}
	if existing == nil {
		logging.LogReconcile(spec.Name, string(ActionUnchanged), r.opts.DryRun)
		return Outcome{Name: spec.Name, Action: ActionUnchanged}, nil
	}

	items, err := r.api.ScreenItems(existing.ID)
	if err != nil {
		return Outcome{}, NewRemoteError("screenitem.get", spec.Name, err)
	}
	if !r.opts.DryRun {
		if err := r.api.DeleteScreenItems(itemIDs(items)); err != nil {
			return Outcome{}, NewRemoteError("screenitem.delete", spec.Name, err)
		}
		if err := r.api.DeleteScreens([]string{existing.ID}); err != nil {
			return Outcome{}, NewRemoteError("screen.delete", spec.Name, err)
		}
	}
	logging.LogReconcile(spec.Name, string(ActionDeleted), r.opts.DryRun)
	return Outcome{Name: spec.Name, Action: ActionDeleted}, nil
}

// ensurePresent creates the screen, rebuilds it when its graph set drifted,
// or leaves it alone.
func (r *Reconciler) ensurePresent(spec ScreenSpec) (Outcome, error) {
	existing, err := r.findScreen(spec.Name)
	if err != nil {
		return Outcome{}, err
	}

	groupIDs, err := r.resolveHostGroups(spec)
	if err != nil {
		return Outcome{}, err
	}
	hosts, err := r.resolveHosts(spec, groupIDs)
	if err != nil {
		return Outcome{}, err
	}
	graphsByHost, err := r.resolveGraphs(spec, hosts)
	if err != nil {
		return Outcome{}, err
	}

	grid := BuildGrid(graphsByHost, spec.GraphsPerRow, spec.GraphWidth, spec.GraphHeight)
	logging.Debug("computed layout",
		zap.String("screen", spec.Name),
		zap.Int("hosts", len(hosts)),
		zap.Int("columns", grid.Columns),
		zap.Int("rows", grid.Rows),
		zap.Int("cells", len(grid.Cells)))

	if existing == nil {
		if !r.opts.DryRun {
			screenID, err := r.api.CreateScreen(spec.Name, grid.Columns, grid.Rows)
			if err != nil {
				return Outcome{}, NewRemoteError("screen.create", spec.Name, err)
			}
			if err := r.createItems(screenID, spec.Name, grid); err != nil {
				return Outcome{}, err
			}
		}
		logging.LogReconcile(spec.Name, string(ActionCreated), r.opts.DryRun)
		return Outcome{Name: spec.Name, Action: ActionCreated}, nil
	}

	items, err := r.api.ScreenItems(existing.ID)
	if err != nil {
		return Outcome{}, NewRemoteError("screenitem.get", spec.Name, err)
	}

	// The update test is the ordered graph id sequence and nothing else.
	// Width, height, or row-count drift alone does not trigger a rewrite.
	if equalStrings(GraphIDs(graphsByHost), resourceIDs(items)) {
		logging.LogReconcile(spec.Name, string(ActionUnchanged), r.opts.DryRun)
		return Outcome{Name: spec.Name, Action: ActionUnchanged}, nil
	}

	if !r.opts.DryRun {
		if err := r.api.DeleteScreenItems(itemIDs(items)); err != nil {
			return Outcome{}, NewRemoteError("screenitem.delete", spec.Name, err)
		}
		if err := r.api.UpdateScreen(existing.ID, grid.Columns, grid.Rows); err != nil {
			return Outcome{}, NewRemoteError("screen.update", spec.Name, err)
		}
		if err := r.createItems(existing.ID, spec.Name, grid); err != nil {
			return Outcome{}, err
		}
	}
	logging.LogReconcile(spec.Name, string(ActionUpdated), r.opts.DryRun)
	return Outcome{Name: spec.Name, Action: ActionUpdated}, nil
}

// findScreen returns the first screen matching name, or nil when none does.
// The lookup is a substring search and the first hit wins, matching how
// screens have historically been addressed.
func (r *Reconciler) findScreen(name string) (*zabbix.Screen, error) {
	matches, err := r.api.ScreensByName(name)
	if err != nil {
		return nil, NewRemoteError("screen.get", name, err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// resolveHostGroups maps every requested group name to its id. Each name
// must resolve; a miss is fatal and carries a did-you-mean hint when a
// similarly named group exists.
func (r *Reconciler) resolveHostGroups(spec ScreenSpec) ([]string, error) {
	groups, err := r.api.HostGroupsByName(spec.HostGroups)
	if err != nil {
		return nil, NewRemoteError("hostgroup.get", spec.Name, err)
	}

	found := make(map[string]string, len(groups))
	for _, g := range groups {
		found[g.Name] = g.ID
	}

	var missing []string
	ids := make([]string, 0, len(spec.HostGroups))
	for _, name := range spec.HostGroups {
		id, ok := found[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, r.groupsNotFound(spec.Name, missing)
	}
	return ids, nil
}

// groupsNotFound builds the lookup failure, appending a suggestion per
// missing name when the server has a close match. The suggestion fetch is
// best effort.
func (r *Reconciler) groupsNotFound(screen string, missing []string) error {
	candidates, err := r.api.AllHostGroupNames()
	if err != nil {
		candidates = nil
	}
	parts := make([]string, len(missing))
	for i, name := range missing {
		parts[i] = fmt.Sprintf("%q", name)
		if suggestion, ok := ClosestName(name, candidates); ok {
			parts[i] += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
	}
	return NewNotFoundError(screen, "host group not found: "+strings.Join(parts, ", "))
}

// resolveHosts returns the monitored hosts belonging to every requested
// group, optionally sorted by name. An empty intersection is fatal.
func (r *Reconciler) resolveHosts(spec ScreenSpec, groupIDs []string) ([]zabbix.Host, error) {
	hosts, err := r.api.HostsByGroupIDs(groupIDs)
	if err != nil {
		return nil, NewRemoteError("host.get", spec.Name, err)
	}

	required := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		required[id] = true
	}

	var matching []zabbix.Host
	for _, h := range hosts {
		member := make(map[string]bool, len(h.Groups))
		for _, g := range h.Groups {
			member[g.ID] = true
		}
		qualifies := true
		for id := range required {
			if !member[id] {
				qualifies = false
				break
			}
		}
		if qualifies {
			matching = append(matching, h)
		}
	}
	if len(matching) == 0 {
		return nil, NewNotFoundError(spec.Name, fmt.Sprintf(
			"no monitored hosts belong to all of: %s", strings.Join(spec.HostGroups, ", ")))
	}

	if spec.SortHosts {
		sort.SliceStable(matching, func(i, j int) bool { return matching[i].Name < matching[j].Name })
	}
	logging.Debug("resolved hosts", zap.String("screen", spec.Name), zap.Int("count", len(matching)))
	return matching, nil
}

// resolveGraphs resolves each requested graph name per host, preserving
// graph name order, then host order. Hosts resolve independently; a host
// without matches keeps its column with no cells.
func (r *Reconciler) resolveGraphs(spec ScreenSpec, hosts []zabbix.Host) ([][]string, error) {
	byHost := make([][]string, len(hosts))
	for i, host := range hosts {
		var ids []string
		for _, name := range spec.GraphNames {
			graphs, err := r.api.GraphsByName(host.ID, name)
			if err != nil {
				return nil, NewRemoteError("graph.get", spec.Name, err)
			}
			for _, g := range graphs {
				ids = append(ids, g.ID)
			}
		}
		byHost[i] = ids
	}
	return byHost, nil
}

// createItems attaches the grid's cells in placement order.
func (r *Reconciler) createItems(screenID, screen string, grid Grid) error {
	for _, cell := range grid.Cells {
		item := zabbix.ScreenItemCreate{
			ScreenID:     screenID,
			ResourceType: zabbix.ResourceTypeGraph,
			ResourceID:   cell.GraphID,
			Width:        cell.Width,
			Height:       cell.Height,
			X:            cell.X,
			Y:            cell.Y,
			Colspan:      1,
			Rowspan:      1,
		}
		if err := r.api.CreateScreenItem(item); err != nil {
			return NewRemoteError("screenitem.create", screen, err)
		}
	}
	return nil
}

func itemIDs(items []zabbix.ScreenItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func resourceIDs(items []zabbix.ScreenItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ResourceID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
