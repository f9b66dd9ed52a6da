package seedr

// Wire types are server-defined; the client only reads them. Field shapes
// follow what the API actually returns, inconsistencies included.

type DeviceCode struct {
	DeviceCode string `json:"device_code"`
	UserCode   string `json:"user_code"`
	ExpiresIn  int    `json:"expires_in"`
	Interval   int    `json:"interval"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Folder struct {
	Result    bool           `json:"result"`
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Fullname  string         `json:"fullname"`
	Size      int64          `json:"size"`
	SpaceMax  int64          `json:"space_max"`
	SpaceUsed int64          `json:"space_used"`
	Folders   []FolderEntry  `json:"folders"`
	Files     []File         `json:"files"`
	Transfers []Transfer     `json:"transfers"`
	WishList  []WishlistItem `json:"wish_list"`
}

type FolderEntry struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Fullname   string `json:"fullname"`
	Size       int64  `json:"size"`
	LastUpdate string `json:"last_update"`
}

type File struct {
	FolderFileID int64  `json:"folder_file_id"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	PlayVideo    bool   `json:"play_video"`
	LastUpdate   string `json:"last_update"`
}

// Transfer is an in-progress torrent download. The server is inconsistent
// about the id field ("id" on some versions, "user_torrent_id" on others),
// so both are kept; use TorrentID to pick whichever is set.
type Transfer struct {
	ID            int64   `json:"id"`
	UserTorrentID int64   `json:"user_torrent_id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Size          int64   `json:"size"`
	Progress      float64 `json:"progress"`
	Hash          string  `json:"hash"`
}

func (t *Transfer) TorrentID() int64 {
	if t.ID != 0 {
		return t.ID
	}
	return t.UserTorrentID
}

type WishlistItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Size  int64  `json:"size"`
}

// VideoFile is a playable file found by ListVideoFiles, annotated with its
// /-joined ancestor path.
type VideoFile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

type StreamURL struct {
	URL   string `json:"url"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Error string `json:"error,omitempty"`
}

type AddTorrentResult struct {
	Result        bool   `json:"result"`
	Code          int    `json:"code"`
	UserTorrentID int64  `json:"user_torrent_id"`
	Title         string `json:"title"`
	TorrentHash   string `json:"torrent_hash"`
	Error         string `json:"error,omitempty"`
	Status        int    `json:"status,omitempty"`
}

// ActionResult is the generic envelope for fire-and-forget calls. Failed
// calls carry Error (and Status for HTTP-level failures) instead of a Go
// error.
type ActionResult struct {
	Result bool   `json:"result"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
}

type PromoteResult struct {
	Result          bool   `json:"result"`
	Error           string `json:"error,omitempty"`
	WillAutoPromote bool   `json:"willAutoPromote,omitempty"`
}

type AccountInfo struct {
	StorageUsed    int64  `json:"storage_used"`
	StorageLimit   int64  `json:"storage_limit"`
	RemainingSpace int64  `json:"remaining_space"`
	Username       string `json:"username"`
	Error          string `json:"error,omitempty"`
}

type ValidationResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ClearResult struct {
	Result       bool   `json:"result"`
	DeletedCount int    `json:"deleted_count"`
	Error        string `json:"error,omitempty"`
}

// deleteItem is one entry of the delete_arr batch.
type deleteItem struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}
