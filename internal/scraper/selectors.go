package scraper

// Selectors for the Olive Young product detail page. The review pane is
// rendered client-side after the tab click, so everything under
// #gdasContentsArea only exists once the tab is active.
const (
	selName          = "#Contents > div.prd_detail_box.renew > div.right_area > div > p.prd_name"
	selPriceDiscount = "#totalPrcTxt"
	selPriceRegular  = "#Contents div.price > span.tx_num"
	selRating        = "#repReview > b"
	selReviewCount   = "#repReview > em"

	selDetailToggle = "#btn_toggle_detail_image"

	selReviewTab   = "#reviewInfo > a"
	selSortHelpful = "#gdasSort > li:nth-child(2) > a"
	selReviewList  = "#gdasList"
	selGraphArea   = "#gdasContentsArea > div > div.product_rating_area.review-write-delete > div > div.graph_area"
	selPaging      = "#gdasContentsArea > div > div.pageing"
)

// galleryPattern is one structural strategy for locating detail images.
// Child-div patterns enumerate the container's direct div children and then
// the img elements within each; the others query images directly.
type galleryPattern struct {
	container string
	childDivs bool
	imageSel  string
}

// galleryPatterns is ordered from the current site layout to the most
// generic fallback. The first pattern yielding at least one image wins.
var galleryPatterns = []galleryPattern{
	{container: "#tempHtml2", childDivs: true},
	{container: "#tempHtml", childDivs: true},
	{container: "div.prd_detail_cont", imageSel: "img"},
	{container: "#Contents div.detail_area", imageSel: "img"},
}

// imageSourceAttrs is the attribute fallback chain for resolving an image
// URL: plain src first, then the lazy-load variants.
var imageSourceAttrs = []string{"src", "data-src", "data-original", "data-lazy"}
