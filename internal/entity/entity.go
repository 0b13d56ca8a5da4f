package entity

// Kind identifies an entity table. It namespaces public ids (a string minted
// for users can not be decoded as a blog id) and keys the ownership registry.
type Kind string

const (
	Users       Kind = "users"
	Blogs       Kind = "blogs"
	Comments    Kind = "comments"
	Messages    Kind = "messages"
	Likes       Kind = "likes"
	Categories  Kind = "categories"
	Requests    Kind = "requests"
	Permissions Kind = "permissions"
)

// Kinds returns every known entity kind.
func Kinds() []Kind {
	return []Kind{
		Users,
		Blogs,
		Comments,
		Messages,
		Likes,
		Categories,
		Requests,
		Permissions,
	}
}

func (k Kind) String() string {
	return string(k)
}
