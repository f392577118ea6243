// Package screens reconciles declared Zabbix screen definitions against a
// live server.
//
// A screen definition names the screen, the host groups whose hosts feed
// it, the graph names to place, and the grid shape. The reconciler reads
// the server's current state and decides per screen whether to create it,
// rebuild it, delete it, or leave it alone, issuing the minimum writes.
//
// # Reconciliation Model
//
// Screens are processed strictly in order, one API call at a time, with no
// state carried between screens. For a present-state screen the flow is:
//  1. Look the screen up by name (first match wins).
//  2. Resolve every host group name; each must exist.
//  3. Resolve the monitored hosts belonging to ALL listed groups.
//  4. Resolve each host's graphs per requested graph name, in order.
//  5. Compute the grid and compare the flattened graph id sequence against
//     the screen's attached resource ids. Equal means no writes at all.
//  6. Otherwise create the screen, or clear its items, resize it, and
//     attach the fresh set.
//
// The comparison covers the graph id sequence and nothing else. A screen
// whose cell sizes or row count changed by hand, with the same graphs in
// the same order, is reported unchanged.
//
// # Usage Example
//
//	client := zabbix.NewClient("https://zabbix.example.com")
//	if err := client.Login("Admin", password); err != nil {
//	    return err
//	}
//
//	manifest, err := screens.LoadManifest("screens.yaml")
//	if err != nil {
//	    return err
//	}
//
//	r := screens.NewReconciler(client, screens.Options{DryRun: false})
//	summary, err := r.Apply(manifest.Screens)
//	if err != nil {
//	    return err
//	}
//	if summary.Changed() {
//	    // render what was created, updated, or deleted
//	}
//
// # Version Gate
//
// Zabbix removed the screen API in 5.4. Apply checks the server version
// once before touching anything and fails with an unsupported version
// error on newer servers.
//
// # Error Handling
//
// Errors carry a kind (configuration, not found, remote API, unsupported
// version) plus the failed operation and target, and unwrap to their
// cause. A missing screen on an absent-state definition is not an error;
// an empty host group or host resolution on a present-state definition is.
package screens
