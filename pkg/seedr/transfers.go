package seedr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/goccy/go-json"

	"github.com/go-seedr/seedr/internal/request"
)

// AddMagnet queues a magnet link for download into folderID (-1 or 0 for
// the root folder). Unlike the best-effort calls, a server-reported error
// in the response body is returned as a Go error even on HTTP 200.
func (c *Client) AddMagnet(token, magnetLink string, folderID int64) (*AddTorrentResult, error) {
	if folderID == 0 {
		folderID = -1
	}
	form := url.Values{
		"func":           {"add_torrent"},
		"access_token":   {token},
		"torrent_magnet": {magnetLink},
		"folder_id":      {strconv.FormatInt(folderID, 10)},
	}
	resp, err := c.rpc(form)
	if err != nil {
		return nil, fmt.Errorf("adding magnet: %w", err)
	}
	var result AddTorrentResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("parsing add magnet response: %w", err)
	}
	if result.Error != "" {
		return &result, fmt.Errorf("adding magnet: %s", result.Error)
	}
	c.logger.Debug().Msgf("Magnet added: %s (torrent %d)", result.Title, result.UserTorrentID)
	return &result, nil
}

// DecodeTorrentContent normalizes torrent content into raw bencode bytes.
// It accepts raw binary, a bare base64 string, or a data URI with a base64
// payload.
func DecodeTorrentContent(content []byte) []byte {
	s := strings.TrimSpace(string(content))
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, "base64,"); idx >= 0 {
			if decoded, err := base64.StdEncoding.DecodeString(s[idx+len("base64,"):]); err == nil {
				return decoded
			}
		}
		return content
	}
	// Bencoded torrents start with 'd'; anything else may be bare base64
	if len(content) > 0 && content[0] != 'd' {
		if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
			return decoded
		}
	}
	return content
}

// AddTorrentFile uploads torrent file content as multipart form data. The
// content may be raw, base64 or a data URI. Failures are reported in the
// result's Error/Status fields, never as a Go error.
func (c *Client) AddTorrentFile(token string, content []byte, filename string) *AddTorrentResult {
	raw := DecodeTorrentContent(content)

	if mi, err := metainfo.Load(bytes.NewReader(raw)); err == nil {
		if info, err := mi.UnmarshalInfo(); err == nil {
			c.logger.Debug().Msgf("Uploading torrent %s (%s)", info.Name, mi.HashInfoBytes().HexString())
			if filename == "" {
				filename = info.Name + ".torrent"
			}
		}
	}
	if filename == "" {
		filename = "upload.torrent"
	}

	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	_ = writer.WriteField("func", "add_torrent")
	_ = writer.WriteField("access_token", token)
	part, err := writer.CreateFormFile("torrent_file", filename)
	if err != nil {
		return &AddTorrentResult{Error: err.Error()}
	}
	if _, err := part.Write(raw); err != nil {
		return &AddTorrentResult{Error: err.Error()}
	}
	if err := writer.Close(); err != nil {
		return &AddTorrentResult{Error: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+resourcePath, payload)
	if err != nil {
		return &AddTorrentResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := c.client.MakeRequest(req)
	if err != nil {
		c.logger.Info().Msgf("Error uploading torrent: %v", err)
		result := &AddTorrentResult{Error: err.Error()}
		var httpErr *request.HTTPError
		if errors.As(err, &httpErr) {
			result.Status = httpErr.StatusCode
		}
		return result
	}
	var result AddTorrentResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return &AddTorrentResult{Error: err.Error()}
	}
	return &result
}

// GetActiveTransfers returns the in-progress torrents from the root folder
// listing. Any failure yields an empty slice.
func (c *Client) GetActiveTransfers(token string) []Transfer {
	folder, err := c.GetFolder(token, 0)
	if err != nil {
		c.logger.Info().Msgf("Error fetching transfers: %v", err)
		return []Transfer{}
	}
	if folder.Transfers == nil {
		return []Transfer{}
	}
	return folder.Transfers
}

// DeleteTorrent removes an active or queued torrent by id.
func (c *Client) DeleteTorrent(token string, torrentID int64) error {
	return c.deleteBatch(token, []deleteItem{{Type: "torrent", ID: torrentID}})
}

// DeleteFolder removes a folder and its contents by id.
func (c *Client) DeleteFolder(token string, folderID int64) error {
	return c.deleteBatch(token, []deleteItem{{Type: "folder", ID: folderID}})
}

// deleteBatch issues one delete RPC for the given items. The server reply
// is logged but not verified beyond an error field.
func (c *Client) deleteBatch(token string, items []deleteItem) error {
	arr, err := json.Marshal(items)
	if err != nil {
		return err
	}
	form := url.Values{
		"func":         {"delete"},
		"access_token": {token},
		"delete_arr":   {string(arr)},
	}
	resp, err := c.rpc(form)
	if err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}
	var result ActionResult
	if err := json.Unmarshal(resp, &result); err == nil && result.Error != "" {
		return fmt.Errorf("deleting items: %s", result.Error)
	}
	c.logger.Debug().Msgf("Deleted %d item(s): %s", len(items), string(resp))
	return nil
}
