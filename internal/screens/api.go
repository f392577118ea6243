package screens

import "github.com/zscreen/zscreen/internal/zabbix"

// API is the slice of the Zabbix client the reconciler depends on.
// *zabbix.Client satisfies it; tests substitute an in-memory fake.
type API interface {
	// APIVersion returns the server's API version string.
	APIVersion() (string, error)

	// HostGroupsByName resolves host groups by exact name.
	HostGroupsByName(names []string) ([]zabbix.HostGroup, error)

	// AllHostGroupNames lists every host group name, for suggestions.
	AllHostGroupNames() ([]string, error)

	// HostsByGroupIDs lists monitored hosts belonging to any of the
	// groups, each with its full group membership attached.
	HostsByGroupIDs(groupIDs []string) ([]zabbix.Host, error)

	// GraphsByName lists a host's graphs whose names contain name,
	// matched case-insensitively.
	GraphsByName(hostID, name string) ([]zabbix.Graph, error)

	// ScreensByName lists screens whose names contain name.
	ScreensByName(name string) ([]zabbix.Screen, error)

	// CreateScreen creates an empty screen and returns its id.
	CreateScreen(name string, columns, rows int) (string, error)

	// UpdateScreen resizes an existing screen.
	UpdateScreen(id string, columns, rows int) error

	// DeleteScreens deletes the screens with the given ids.
	DeleteScreens(ids []string) error

	// ScreenItems lists the cells attached to a screen.
	ScreenItems(screenID string) ([]zabbix.ScreenItem, error)

	// CreateScreenItem attaches one cell to a screen.
	CreateScreenItem(item zabbix.ScreenItemCreate) error

	// DeleteScreenItems deletes the given cells; an empty list is a no-op.
	DeleteScreenItems(ids []string) error
}
