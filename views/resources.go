package views

import (
	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
)

func Users(p Page, users []repository.User) templ.Component {
	return render("users/index", ListData[repository.User]{Page: p, Items: users})
}

func User(p Page, user repository.User) templ.Component {
	return render("users/show", ShowData[repository.User]{Page: p, Item: user})
}

// UserForm renders the new form when id is uuid.Nil and the edit form otherwise.
func UserForm(p Page, id uuid.UUID, form requests.User, errs FormErrors) templ.Component {
	return render("users/form", newForm(p, form, errs, "/users", id))
}

func Subscribers(p Page, subs []repository.Subscriber) templ.Component {
	return render("subscribers/index", ListData[repository.Subscriber]{Page: p, Items: subs})
}

func Subscriber(p Page, sub repository.Subscriber) templ.Component {
	return render("subscribers/show", ShowData[repository.Subscriber]{Page: p, Item: sub})
}

func SubscriberForm(p Page, id uuid.UUID, form requests.Subscriber, errs FormErrors) templ.Component {
	return render("subscribers/form", newForm(p, form, errs, "/subscribers", id))
}

func Courses(p Page, courses []repository.Course) templ.Component {
	return render("courses/index", ListData[repository.Course]{Page: p, Items: courses})
}

func Course(p Page, course repository.Course) templ.Component {
	return render("courses/show", ShowData[repository.Course]{Page: p, Item: course})
}

// CourseForm takes the current cover image key so the edit form can show it.
func CourseForm(p Page, id uuid.UUID, form requests.Course, imageKey string, errs FormErrors) templ.Component {
	data := newForm(p, form, errs, "/courses", id)
	data.ImageKey = imageKey
	return render("courses/form", data)
}

func Talks(p Page, talks []repository.Talk) templ.Component {
	return render("talks/index", ListData[repository.Talk]{Page: p, Items: talks})
}

func Talk(p Page, talk repository.Talk) templ.Component {
	return render("talks/show", ShowData[repository.Talk]{Page: p, Item: talk})
}

func TalkForm(p Page, id uuid.UUID, form requests.Talk, errs FormErrors) templ.Component {
	return render("talks/form", newForm(p, form, errs, "/talks", id))
}

func Trains(p Page, trains []repository.Train) templ.Component {
	return render("trains/index", ListData[repository.Train]{Page: p, Items: trains})
}

func Train(p Page, train repository.Train) templ.Component {
	return render("trains/show", ShowData[repository.Train]{Page: p, Item: train})
}

func TrainForm(p Page, id uuid.UUID, form requests.Train, errs FormErrors) templ.Component {
	return render("trains/form", newForm(p, form, errs, "/trains", id))
}
