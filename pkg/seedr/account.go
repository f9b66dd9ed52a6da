package seedr

import (
	"net/url"

	"github.com/goccy/go-json"
)

// GetAccountInfo fetches storage usage for the account. RemainingSpace is
// computed locally as limit minus used. Failures yield a zeroed struct
// with Error set.
func (c *Client) GetAccountInfo(token string) *AccountInfo {
	form := url.Values{
		"func":         {"get_account_info"},
		"access_token": {token},
	}
	resp, err := c.rpc(form)
	if err != nil {
		c.logger.Info().Msgf("Error fetching account info: %v", err)
		return &AccountInfo{Error: err.Error()}
	}

	// Newer servers answer flat, older ones nest the fields under account
	var raw struct {
		SpaceUsed int64  `json:"space_used"`
		SpaceMax  int64  `json:"space_max"`
		Username  string `json:"username"`
		Error     string `json:"error"`
		Account   *struct {
			SpaceUsed int64  `json:"space_used"`
			SpaceMax  int64  `json:"space_max"`
			Username  string `json:"username"`
		} `json:"account"`
	}
	if err := json.Unmarshal(resp, &raw); err != nil {
		return &AccountInfo{Error: err.Error()}
	}
	if raw.Error != "" {
		return &AccountInfo{Error: raw.Error}
	}
	used, limit, username := raw.SpaceUsed, raw.SpaceMax, raw.Username
	if raw.Account != nil {
		used, limit, username = raw.Account.SpaceUsed, raw.Account.SpaceMax, raw.Account.Username
	}
	return &AccountInfo{
		StorageUsed:    used,
		StorageLimit:   limit,
		RemainingSpace: limit - used,
		Username:       username,
	}
}

// ValidateCredentials checks whether the token still works by fetching
// account info; it issues no request of its own.
func (c *Client) ValidateCredentials(token string) *ValidationResult {
	info := c.GetAccountInfo(token)
	if info.Error != "" {
		return &ValidationResult{Status: "error", Message: info.Error}
	}
	return &ValidationResult{Status: "success"}
}

// CreateFolder creates a folder at the account root.
func (c *Client) CreateFolder(token, name string) *ActionResult {
	form := url.Values{
		"func":         {"add_folder"},
		"access_token": {token},
		"name":         {name},
	}
	resp, err := c.rpc(form)
	if err != nil {
		c.logger.Info().Msgf("Error creating folder %q: %v", name, err)
		return actionFailure(err)
	}
	result := &ActionResult{}
	if err := json.Unmarshal(resp, result); err != nil {
		return &ActionResult{Error: err.Error()}
	}
	return result
}

// GetFolderByName returns the first root-level folder whose name matches
// exactly, or nil when no folder matches or the listing fails.
func (c *Client) GetFolderByName(token, name string) *FolderEntry {
	folder, err := c.GetFolder(token, 0)
	if err != nil {
		c.logger.Info().Msgf("Error fetching root folder: %v", err)
		return nil
	}
	for i := range folder.Folders {
		if folder.Folders[i].Name == name {
			return &folder.Folders[i]
		}
	}
	return nil
}

// ClearAccount deletes every root-level folder, file and transfer in one
// delete batch. DeletedCount counts requested deletions; the server reply
// is logged but not verified, so partial server-side failures go
// undetected. An already-empty account succeeds without issuing the RPC.
func (c *Client) ClearAccount(token string) *ClearResult {
	folder, err := c.GetFolder(token, 0)
	if err != nil {
		c.logger.Info().Msgf("Error fetching root folder for clear: %v", err)
		return &ClearResult{Result: false, Error: err.Error()}
	}

	items := make([]deleteItem, 0, len(folder.Folders)+len(folder.Files)+len(folder.Transfers))
	for _, f := range folder.Folders {
		items = append(items, deleteItem{Type: "folder", ID: f.ID})
	}
	for _, f := range folder.Files {
		items = append(items, deleteItem{Type: "file", ID: f.FolderFileID})
	}
	for _, t := range folder.Transfers {
		items = append(items, deleteItem{Type: "torrent", ID: t.TorrentID()})
	}

	if len(items) == 0 {
		return &ClearResult{Result: true, DeletedCount: 0}
	}

	if err := c.deleteBatch(token, items); err != nil {
		c.logger.Info().Msgf("Error clearing account: %v", err)
		return &ClearResult{Result: false, Error: err.Error()}
	}
	return &ClearResult{Result: true, DeletedCount: len(items)}
}
