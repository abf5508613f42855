package tool

// Declarations returns the schemas for both capability sets, in the order
// they are presented to the AI collaborator.
func Declarations() []Declaration {
	return []Declaration{
		{
			Name:        NameView,
			Description: "View a file's content or list a directory",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"path": {Type: TypeString, Description: "Absolute path to file or directory"},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        NameCreate,
			Description: "Create a new file with the given content. Missing parent directories are created.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"path":    {Type: TypeString, Description: "Absolute path for the new file"},
					"content": {Type: TypeString, Description: "File content"},
				},
				Required: []string{"path", "content"},
			},
		},
		{
			Name:        NameStrReplace,
			Description: "Replace text in a file. old_str must match exactly once.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"path":    {Type: TypeString, Description: "Absolute path to the file"},
					"old_str": {Type: TypeString, Description: "Text to find (must be unique in the file)"},
					"new_str": {Type: TypeString, Description: "Replacement text"},
				},
				Required: []string{"path", "old_str", "new_str"},
			},
		},
		{
			Name:        NameInsert,
			Description: "Insert text after a given line number. Line 0 inserts at the top.",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"path":        {Type: TypeString, Description: "Absolute path to the file"},
					"insert_line": {Type: TypeInteger, Description: "1-based line to insert after; 0 for top of file"},
					"text":        {Type: TypeString, Description: "Text to insert"},
				},
				Required: []string{"path", "insert_line", "text"},
			},
		},
		{
			Name:        NameRename,
			Description: "Move or rename a file or directory",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"old_path": {Type: TypeString, Description: "Current absolute path"},
					"new_path": {Type: TypeString, Description: "New absolute path"},
				},
				Required: []string{"old_path", "new_path"},
			},
		},
		{
			Name:        NameDelete,
			Description: "Delete a file or directory (directories are removed recursively)",
			Parameters: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"path": {Type: TypeString, Description: "Absolute path to delete"},
				},
				Required: []string{"path"},
			},
		},
	}
}
