package sceneforge

var (
	Debug = false // set to true for verbose debug output

	// Compile time checks to ensure the load-time error types satisfy error
	_ error = (*SyntaxError)(nil)
	_ error = (*MissingPropertyError)(nil)
	_ error = (*UnknownGeometryTypeError)(nil)
)
