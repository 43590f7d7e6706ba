// Package changes records effective field writes to live resources.
//
// Updaters never compare values themselves. They call Set with a Property,
// the pair of accessor and mutator for one field, and the declared value:
//
//	t := changes.Track(client, changes.Commit)
//	changes.Set(t, clientDescription, def.Description)
//	if t.Changed() {
//		logging.Info("ClientFormer", "%s updated with the following changes:\n %s", name, t)
//	}
//
// Set ignores absent values, suppresses writes equal to the current value
// and, in Preview mode, records the change without forwarding it.
package changes
