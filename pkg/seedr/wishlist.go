package seedr

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/valyala/fastjson"
)

// GetWishlist returns the queued torrents awaiting storage. The endpoint's
// response shape varies across server versions, so the body is probed
// against the known variants in order (see parseWishlistBody). When the
// endpoint itself fails (older servers answer 500), the root folder's
// wish_list field is used instead. This call never fails; the worst case
// is an empty list.
func (c *Client) GetWishlist(token string) []WishlistItem {
	form := url.Values{
		"func":         {"get_wish_list"},
		"access_token": {token},
	}
	resp, err := c.rpc(form)
	if err != nil {
		c.logger.Info().Msgf("Wishlist endpoint unavailable, falling back to folder listing: %v", err)
		return c.wishlistFromFolder(token)
	}
	items, err := parseWishlistBody(resp)
	if err != nil {
		c.logger.Info().Msgf("Error parsing wishlist response: %v", err)
		return []WishlistItem{}
	}
	return items
}

// parseWishlistBody extracts wishlist items from any of the response
// shapes the server is known to produce, in priority order:
//  1. object with a wish_list array
//  2. object with result as an array
//  3. bare top-level array
//  4. object with result=false and an error (no items, not a failure)
func parseWishlistBody(body []byte) ([]WishlistItem, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid wishlist body: %w", err)
	}

	switch v.Type() {
	case fastjson.TypeObject:
		if wl := v.Get("wish_list"); wl != nil && wl.Type() == fastjson.TypeArray {
			return wishlistItems(wl.GetArray()), nil
		}
		if r := v.Get("result"); r != nil && r.Type() == fastjson.TypeArray {
			return wishlistItems(r.GetArray()), nil
		}
		if v.Exists("error") {
			// result=false + error means the account has no wishlist
			return []WishlistItem{}, nil
		}
		return []WishlistItem{}, nil
	case fastjson.TypeArray:
		return wishlistItems(v.GetArray()), nil
	default:
		return nil, fmt.Errorf("unexpected wishlist body type %s", v.Type())
	}
}

func wishlistItems(values []*fastjson.Value) []WishlistItem {
	items := make([]WishlistItem, 0, len(values))
	for _, v := range values {
		if v.Type() != fastjson.TypeObject {
			continue
		}
		item := WishlistItem{
			ID:   v.GetInt64("id"),
			Size: v.GetInt64("size"),
		}
		if title := v.GetStringBytes("title"); title != nil {
			item.Title = string(title)
		} else if name := v.GetStringBytes("name"); name != nil {
			item.Title = string(name)
		}
		items = append(items, item)
	}
	return items
}

func (c *Client) wishlistFromFolder(token string) []WishlistItem {
	folder, err := c.GetFolder(token, 0)
	if err != nil {
		c.logger.Info().Msgf("Error fetching folder for wishlist fallback: %v", err)
		return []WishlistItem{}
	}
	if folder.WishList == nil {
		return []WishlistItem{}
	}
	return folder.WishList
}

// PromoteFromWishlist asks the server to start downloading a wishlist
// entry. The promotion endpoint is missing on some server versions and the
// server auto-promotes queued items when storage frees up, so any failure
// is reported as a soft result with WillAutoPromote set.
func (c *Client) PromoteFromWishlist(token string, wishlistID int64) *PromoteResult {
	form := url.Values{
		"func":         {"start_wish"},
		"access_token": {token},
		"wish_id":      {strconv.FormatInt(wishlistID, 10)},
	}
	unavailable := &PromoteResult{
		Result:          false,
		Error:           "Promotion endpoint unavailable",
		WillAutoPromote: true,
	}
	resp, err := c.rpc(form)
	if err != nil {
		c.logger.Info().Msgf("Error promoting wishlist item %d: %v", wishlistID, err)
		return unavailable
	}
	var p fastjson.Parser
	v, err := p.ParseBytes(resp)
	if err != nil || v.Exists("error") {
		return unavailable
	}
	return &PromoteResult{Result: v.GetBool("result")}
}

// DeleteFromWishlist removes a wishlist entry. Failures are reported in
// the result's Error field.
func (c *Client) DeleteFromWishlist(token string, wishlistID int64) *ActionResult {
	form := url.Values{
		"func":         {"wish_delete"},
		"access_token": {token},
		"wish_id":      {strconv.FormatInt(wishlistID, 10)},
	}
	resp, err := c.rpc(form)
	if err != nil {
		c.logger.Info().Msgf("Error deleting wishlist item %d: %v", wishlistID, err)
		return &ActionResult{Error: err.Error()}
	}
	result := &ActionResult{}
	if err := json.Unmarshal(resp, result); err != nil {
		return &ActionResult{Error: err.Error()}
	}
	return result
}
