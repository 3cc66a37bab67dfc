package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
)

// Rule is the minimum caller tier for an operation.
type Rule int

const (
	Public Rule = iota
	Authenticated
	// OwnerOrStaff and Owner only require authentication here; services
	// narrow the rows through ownership scoping.
	OwnerOrStaff
	Owner
	Staff
)

// RouteKind distinguishes collection routes from routes addressing one row.
type RouteKind int

const (
	Collection RouteKind = iota
	Item
)

// Resources guarded by the policy table.
const (
	ResourceUsers              = "users"
	ResourceProfile            = "profile"
	ResourceCategories         = "categories"
	ResourceMenus              = "menus"
	ResourceOrders             = "orders"
	ResourceReservations       = "reservations"
	ResourceReservationActions = "reservation-actions"
	ResourceReviews            = "reviews"
	ResourceCampaigns          = "campaigns"
	ResourceContacts           = "contacts"
	ResourceSubscriptions      = "subscriptions"
	ResourceStatistics         = "statistics"
	ResourceUploads            = "uploads"
)

type policyKey struct {
	resource string
	method   string
	kind     RouteKind
}

// catalogue describes resources anyone may browse and staff maintain.
func catalogue(resource string) map[policyKey]Rule {
	return map[policyKey]Rule{
		{resource, http.MethodGet, Collection}:  Public,
		{resource, http.MethodGet, Item}:        Public,
		{resource, http.MethodPost, Collection}: Staff,
		{resource, http.MethodPut, Item}:        Staff,
		{resource, http.MethodDelete, Item}:     Staff,
	}
}

// owned describes resources customers create and see their own rows of.
func owned(resource string) map[policyKey]Rule {
	return map[policyKey]Rule{
		{resource, http.MethodGet, Collection}:  OwnerOrStaff,
		{resource, http.MethodGet, Item}:        OwnerOrStaff,
		{resource, http.MethodPost, Collection}: Authenticated,
		{resource, http.MethodPut, Item}:        Staff,
		{resource, http.MethodDelete, Item}:     Staff,
	}
}

var policies = buildPolicies()

func buildPolicies() map[policyKey]Rule {
	table := map[policyKey]Rule{
		{ResourceUsers, http.MethodGet, Collection}: Staff,

		{ResourceProfile, http.MethodGet, Collection}:  Authenticated,
		{ResourceProfile, http.MethodPut, Collection}:  Authenticated,
		{ResourceProfile, http.MethodPost, Collection}: Authenticated,

		{ResourceReservationActions, http.MethodGet, Item}:  OwnerOrStaff,
		{ResourceReservationActions, http.MethodPost, Item}: OwnerOrStaff,

		{ResourceReviews, http.MethodGet, Collection}:  Public,
		{ResourceReviews, http.MethodGet, Item}:        Public,
		{ResourceReviews, http.MethodPost, Collection}: Authenticated,
		{ResourceReviews, http.MethodPut, Item}:        Owner,
		{ResourceReviews, http.MethodDelete, Item}:     OwnerOrStaff,

		{ResourceContacts, http.MethodGet, Collection}:  Staff,
		{ResourceContacts, http.MethodGet, Item}:        Staff,
		{ResourceContacts, http.MethodPost, Collection}: Public,
		{ResourceContacts, http.MethodPut, Item}:        Staff,
		{ResourceContacts, http.MethodDelete, Item}:     Staff,

		{ResourceSubscriptions, http.MethodGet, Collection}:  Staff,
		{ResourceSubscriptions, http.MethodPost, Collection}: Public,
		{ResourceSubscriptions, http.MethodDelete, Item}:     Staff,

		{ResourceStatistics, http.MethodGet, Collection}: Staff,

		{ResourceUploads, http.MethodPost, Collection}: Staff,
	}

	for _, group := range []map[policyKey]Rule{
		catalogue(ResourceCategories),
		catalogue(ResourceMenus),
		catalogue(ResourceCampaigns),
		owned(ResourceOrders),
		owned(ResourceReservations),
	} {
		for k, v := range group {
			table[k] = v
		}
	}
	return table
}

// Lookup returns the rule for an operation. PATCH shares the PUT rule.
func Lookup(resource, method string, kind RouteKind) (Rule, bool) {
	if method == http.MethodPatch {
		method = http.MethodPut
	}
	rule, ok := policies[policyKey{resource, method, kind}]
	return rule, ok
}

// Allows reports the status a caller with role gets for rule: 0 when allowed,
// otherwise 401 or 403.
func Allows(rule Rule, role models.Role) int {
	if rule == Public {
		return 0
	}
	if role == models.RoleAnonymous {
		return http.StatusUnauthorized
	}
	if rule == Staff && role < models.RoleStaff {
		return http.StatusForbidden
	}
	return 0
}

// Authorize enforces the policy table for resource. Routes carrying an :id
// parameter are item routes. Operations missing from the table are refused.
func Authorize(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := Collection
		if c.Param("id") != "" {
			kind = Item
		}

		rule, ok := Lookup(resource, c.Request.Method, kind)
		if !ok {
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed, apperrors.ErrMethodNotAllowed)
			return
		}

		switch Allows(rule, GetCaller(c).Role) {
		case http.StatusUnauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		case http.StatusForbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
