// Package env resolves {{...}} placeholders in route, body and header text.
//
// Placeholders take three forms:
//   - {{name}}: a variable from a dotenv file or the config file
//   - {{$NAME}}: an OS environment variable
//   - {{uuid()}}: a call to a function from the builtin package
//
// Unresolved placeholders are left in place and reported through WarnFunc.
package env
