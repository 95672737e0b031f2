// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package image stores display images (logos, banners) for other entities.

Each owner holds at most one image per package caller; re-storing for the
same owner overwrites the previous object in place. Bytes go to object
storage first, the metadata row second, so a storage failure never leaves
a row pointing at nothing.
*/
package image

import "time"

// Image is the metadata row of one stored display image.
type Image struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
