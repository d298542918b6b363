package storage

import "github.com/sandeepkv93/taskhub/internal/model"

// TaskUpdate carries the columns to overwrite. Nil fields are coalesced
// with the stored value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

func UpdateFromPatch(p model.TaskPatch) TaskUpdate {
	return TaskUpdate{
		Title:       p.Title.Ptr(),
		Description: p.Description.Ptr(),
		Completed:   p.Completed.Ptr(),
	}
}

const taskColumns = `id, title, description, completed, created_at, updated_at`

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
