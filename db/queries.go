package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Notes queries

//go:embed sql/select_notes_by_video.sql
var SelectNotesByVideoSQL string

//go:embed sql/insert_note.sql
var InsertNoteSQL string

//go:embed sql/delete_notes_by_video.sql
var DeleteNotesByVideoSQL string

//go:embed sql/select_videos.sql
var SelectVideosSQL string
