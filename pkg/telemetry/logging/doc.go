// Package logging builds the structured loggers used for the guard's diagnostics.
//
// Diagnostics go to a side channel (stderr by default) through log/slog, in
// JSON, text or console format. Every record carries component=oneshot so it
// can be told apart from the host program's own output.
//
// # Secret Values
//
// Secret material must never appear in full in any record. Two mechanisms
// enforce that:
//
//   - Preview renders the bounded prefix the guard logs in place of a value.
//   - A Redactor tracks every cached value, and a handler built with
//     NewRedactingHandler rewrites any message or attribute containing a
//     tracked value to its preview before the record is written.
//
// # Basic Usage
//
//	redactor := logging.NewRedactor()
//	logger, err := logging.New(logging.Config{
//		Level:    "info",
//		Format:   "text",
//		Redactor: redactor,
//	})
//	if err != nil {
//		return err
//	}
//
//	redactor.Track(value)
//	logger.Info("token accessed and cached", "name", name, "value", logging.Preview(value))
//
// Handlers receive the caller's context unchanged, so a handler that needs to
// read the environment can pass that context back to the guard and take its
// reentrant passthrough path.
package logging
