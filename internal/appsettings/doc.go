// Package appsettings reads and edits the XML settings file envvault falls
// back to when a variable is not in the store.
//
// The file holds a single root container with repeated entries:
//
//	<appSettings>
//	  <add key="MYAPP_API_KEY" value="enc:..." />
//	  <add key="MYAPP_TIMEOUT" value="30" />
//	</appSettings>
//
// Keys are matched case-insensitively and the first match in document order
// wins. Comments, unknown elements and attributes are kept on save. Saving
// rewrites the file in place without a temporary file, so a crash during
// Save can leave a partially written file.
package appsettings
