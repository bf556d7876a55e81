// Package glosso is an editing core for hierarchical translation
// catalogs: one JSON document per project holding every language, every
// key and every value, edited through a session that tracks pending
// changes against the last saved state.
//
// A catalog is a tree. Namespaces group keys, leaves hold one value per
// language, and dotted paths like "auth.login.title" address both.
// Documents round-trip through the codec with key order preserved, so a
// catalog saved and reloaded diffs cleanly in version control.
//
// # Quick Start
//
// Open a store, create a session for a project, load and edit:
//
//	st, _ := glosso.NewFileStore("./data")
//	sess, _ := glosso.New(st, "web-app")
//
//	if err := sess.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = sess.UpdateTranslation("auth.login.title", "de", "Anmelden")
//	newPath, _ := sess.RenameKey("auth.login.title", "heading")
//
//	for _, c := range sess.Changes() {
//	    fmt.Println(c.Path, c.Before, "->", c.After)
//	}
//
//	_ = sess.Save(ctx)    // persist and clear pending changes
//	_ = sess.Discard()    // or roll back to the last saved state
//
// # Pending Changes
//
// Every value edit and key rename is tracked against a snapshot taken
// at load. Restoring a value to its original removes its entry, renames
// chain into a single entry, and renaming a namespace re-paths pending
// entries underneath it. Structural operations - adding or deleting
// keys, adding or removing languages - apply immediately and are not
// tracked.
//
// # Stores
//
// Catalogs persist through the [Store] interface. Four backends ship in
// [github.com/glosso/glosso/pkg/store]: in-memory, local files,
// Postgres (JSONB with embedded migrations) and S3. All of them keep
// one document per project.
//
// # Export and Import
//
// Sessions export the whole document or one language as nested JSON,
// nested YAML or a flat dotted-key document, and write one file per
// language concurrently:
//
//	data, _ := sess.Export("en", glosso.FormatFlat)
//	_ = sess.WriteLanguageFiles(ctx, "./locales", glosso.FormatJSON)
//
// Import applies an external single-language document all-or-nothing,
// recording every applied value as a pending change.
//
// # Drafts
//
// With a draft cache configured, the working state (catalog plus
// pending changes) can be autosaved and restored after a restart:
//
//	sess, _ := glosso.New(st, "web-app",
//	    glosso.WithDraftCache(glosso.NewDraftCache()),
//	)
//
// The glosso command in cmd/glosso wires all of this into an HTTP
// server with draft autosave, export-on-save and scheduled backups,
// configured through a TOML file.
package glosso

