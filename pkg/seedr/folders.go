package seedr

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
)

// maxTraversalDepth bounds ListVideoFiles descent. The server is trusted to
// serve acyclic trees, but a corrupted listing must not pin the client in a
// loop.
const maxTraversalDepth = 64

// GetFolder fetches a folder listing. A folderID <= 0 fetches the root
// folder.
func (c *Client) GetFolder(token string, folderID int64) (*Folder, error) {
	u := c.baseURL + folderPath
	if folderID > 0 {
		u += "/" + strconv.FormatInt(folderID, 10)
	}
	u += "?access_token=" + url.QueryEscape(token)
	resp, err := c.get(u)
	if err != nil {
		return nil, fmt.Errorf("fetching folder: %w", err)
	}
	var folder Folder
	if err := json.Unmarshal(resp, &folder); err != nil {
		return nil, fmt.Errorf("parsing folder response: %w", err)
	}
	return &folder, nil
}

// ListVideoFiles walks the folder tree starting at folderID (root when
// <= 0) and collects every file flagged play_video, annotated with its
// /-joined ancestor path rooted at parentPath. A folder's own files come
// before its subfolders, both in API order. Folders that fail to load are
// logged and skipped; the caller always gets whatever was collected.
func (c *Client) ListVideoFiles(token string, folderID int64, parentPath string) []VideoFile {
	type node struct {
		id    int64
		path  string
		depth int
	}

	videos := make([]VideoFile, 0)
	visited := make(map[int64]struct{})
	stack := []node{{id: folderID, path: parentPath}}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.depth > maxTraversalDepth {
			c.logger.Warn().Msgf("Skipping folder %d: max depth %d exceeded", n.id, maxTraversalDepth)
			continue
		}
		if n.id > 0 {
			if _, ok := visited[n.id]; ok {
				c.logger.Warn().Msgf("Skipping folder %d: already visited", n.id)
				continue
			}
			visited[n.id] = struct{}{}
		}

		folder, err := c.GetFolder(token, n.id)
		if err != nil {
			c.logger.Info().Msgf("Error fetching folder %d: %v", n.id, err)
			continue
		}
		// Guard against the root listing reappearing as a child
		visited[folder.ID] = struct{}{}

		for _, f := range folder.Files {
			if !f.PlayVideo {
				continue
			}
			videos = append(videos, VideoFile{
				ID:   f.FolderFileID,
				Name: f.Name,
				Size: f.Size,
				Path: joinPath(n.path, f.Name),
			})
		}

		// Push subfolders in reverse so the stack pops them in API order
		for i := len(folder.Folders) - 1; i >= 0; i-- {
			sub := folder.Folders[i]
			stack = append(stack, node{
				id:    sub.ID,
				path:  joinPath(n.path, sub.Name),
				depth: n.depth + 1,
			})
		}
	}

	return videos
}

// GetStreamURL resolves a direct playback URL for a video file.
func (c *Client) GetStreamURL(token string, fileID int64) (*StreamURL, error) {
	form := url.Values{
		"func":           {"fetch_file"},
		"access_token":   {token},
		"folder_file_id": {strconv.FormatInt(fileID, 10)},
	}
	resp, err := c.rpc(form)
	if err != nil {
		return nil, fmt.Errorf("fetching stream url: %w", err)
	}
	var stream StreamURL
	if err := json.Unmarshal(resp, &stream); err != nil {
		return nil, fmt.Errorf("parsing stream url response: %w", err)
	}
	if stream.Error != "" {
		return nil, fmt.Errorf("fetching stream url: %s", stream.Error)
	}
	return &stream, nil
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "/" + name
}
